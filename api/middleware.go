package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/usecases"
	"github.com/opentransit/editor-backend/utils"
)

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}

	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found {
		return "", errors.Wrap(models.BadParameterError, "malformed authorization header")
	}
	return strings.TrimSpace(token), nil
}

func wrapErrInUnAuthorizedError(err error) error {
	// An access token that is missing, expired, revoked or malformed yields a 401.
	if errors.Is(err, models.UnAuthorizedError) {
		return err
	}
	return errors.Join(models.UnAuthorizedError, err)
}

// credentialsMiddleware resolves the bearer token into credentials and
// stores them in the request context for the handlers downstream.
func credentialsMiddleware(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := ParseAuthorizationBearerHeader(c.Request.Header)
		if err != nil {
			presentError(ctx, c, err)
			c.Abort()
			return
		}
		if token == "" {
			presentError(ctx, c, errors.Wrap(models.UnAuthorizedError, "missing bearer token"))
			c.Abort()
			return
		}

		credentialsUseCase := uc.NewCredentialsUseCase()
		creds, err := credentialsUseCase.CredentialsFromToken(ctx, token)
		if err != nil {
			presentError(ctx, c, wrapErrInUnAuthorizedError(err))
			c.Abort()
			return
		}

		newContext := utils.StoreCredentialsInContext(ctx, creds)

		if creds.ActorIdentity.Email != "" {
			logger := utils.LoggerFromContext(newContext).
				With(slog.String("email", creds.ActorIdentity.Email)).
				With(slog.String("principal_id", creds.Principal.Id.String()))
			newContext = utils.StoreLoggerInContext(newContext, logger)
		}

		c.Request = c.Request.WithContext(newContext)
		c.Next()
	}
}

// workerAuthMiddleware authenticates the worker pool on the callback routes.
func workerAuthMiddleware(uc usecases.Usecases) gin.HandlerFunc {
	workerAuth := uc.NewWorkerAuthUseCase()

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := ParseAuthorizationBearerHeader(c.Request.Header)
		if err != nil {
			presentError(ctx, c, err)
			c.Abort()
			return
		}
		if token == "" {
			presentError(ctx, c, errors.Wrap(models.UnAuthorizedError, "missing worker token"))
			c.Abort()
			return
		}

		workerId, err := workerAuth.VerifyWorkerToken(token)
		if err != nil {
			presentError(ctx, c, wrapErrInUnAuthorizedError(err))
			c.Abort()
			return
		}

		logger := utils.LoggerFromContext(ctx).With(slog.String("worker_id", workerId))
		c.Request = c.Request.WithContext(utils.StoreLoggerInContext(ctx, logger))
		c.Next()
	}
}
