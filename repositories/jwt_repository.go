package repositories

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
)

const (
	tokenIssuer    = "editor-backend"
	workerAudience = "worker-pool"
)

var ValidationAlgo = jwt.SigningMethodHS256

type JwtRepository struct {
	signingKey []byte
}

func NewJwtRepository(key []byte) *JwtRepository {
	return &JwtRepository{signingKey: key}
}

// We add jwt.RegisteredClaims as an embedded type, to provide fields like expiry time
type PrincipalClaims struct {
	PrincipalId string `json:"principal_id"`
	jwt.RegisteredClaims
}

func (repo *JwtRepository) EncodePrincipalToken(expirationTime time.Time, principalId uuid.UUID) (string, error) {
	claims := &PrincipalClaims{
		PrincipalId: principalId.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(ValidationAlgo, claims)
	return token.SignedString(repo.signingKey)
}

func (repo *JwtRepository) ValidatePrincipalToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PrincipalClaims{}, repo.keyFunc,
		jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return uuid.Nil, errors.Join(
			models.UnAuthorizedError,
			errors.Wrap(err, "error parsing jwt token claims"),
		)
	}

	claims, ok := token.Claims.(*PrincipalClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.Wrap(models.UnAuthorizedError, "invalid principal token")
	}
	principalId, err := uuid.Parse(claims.PrincipalId)
	if err != nil {
		return uuid.Nil, errors.Wrap(models.UnAuthorizedError, "invalid principal id in token")
	}
	return principalId, nil
}

// ValidateWorkerToken checks a token presented on the worker callback routes.
// Worker tokens carry the worker pool audience and the worker id as subject.
func (repo *JwtRepository) ValidateWorkerToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, repo.keyFunc,
		jwt.WithAudience(workerAudience))
	if err != nil {
		return "", errors.Join(
			models.UnAuthorizedError,
			errors.Wrap(err, "error parsing worker token claims"),
		)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.Wrap(models.UnAuthorizedError, "invalid worker token")
	}
	return claims.Subject, nil
}

func (repo *JwtRepository) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Wrapf(models.UnAuthorizedError,
			"unexpected signing method: %v", token.Header["alg"])
	}
	return repo.signingKey, nil
}
