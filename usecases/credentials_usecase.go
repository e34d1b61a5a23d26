package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories"
	"github.com/opentransit/editor-backend/usecases/executor_factory"
)

type CredentialsUseCaseRepository interface {
	GetPrincipalById(ctx context.Context, exec repositories.Executor,
		principalId uuid.UUID) (models.Principal, error)
}

type principalTokenVerifier interface {
	EncodePrincipalToken(expirationTime time.Time, principalId uuid.UUID) (string, error)
	ValidatePrincipalToken(tokenString string) (uuid.UUID, error)
}

type CredentialsUseCase struct {
	transactionFactory  executor_factory.TransactionFactory
	repository          CredentialsUseCaseRepository
	jwtRepository       principalTokenVerifier
	tokenLifetimeMinute int
}

// CredentialsFromToken resolves the bearer token into credentials carrying a
// grant snapshot. The snapshot is loaded in one repeatable read transaction:
// the grant and membership reads then see the same database snapshot, so a
// concurrent grant change cannot produce a mixed view that never existed. A
// disabled principal still resolves: denial happens at authorization time,
// with a distinct error.
func (usecase *CredentialsUseCase) CredentialsFromToken(ctx context.Context, token string) (models.Credentials, error) {
	principalId, err := usecase.jwtRepository.ValidatePrincipalToken(token)
	if err != nil {
		return models.Credentials{}, err
	}

	principal, err := executor_factory.SnapshotTransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Principal, error) {
			return usecase.repository.GetPrincipalById(ctx, tx, principalId)
		})
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return models.Credentials{}, errors.Wrapf(models.ErrUnknownPrincipal,
				"principal %s from a valid token", principalId)
		}
		return models.Credentials{}, err
	}

	return principal.IntoCredentials(), nil
}

// RefreshToken issues a fresh token for an already authenticated principal.
func (usecase *CredentialsUseCase) RefreshToken(ctx context.Context, credentials models.Credentials) (string, time.Time, error) {
	if credentials.Principal.Id == uuid.Nil {
		return "", time.Time{}, errors.Wrap(models.UnAuthorizedError, "no credentials in context")
	}
	expirationTime := time.Now().Add(time.Duration(usecase.tokenLifetimeMinute) * time.Minute)
	token, err := usecase.jwtRepository.EncodePrincipalToken(expirationTime, credentials.Principal.Id)
	return token, expirationTime, err
}
