package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opentransit/editor-backend/dto"
	"github.com/opentransit/editor-backend/usecases"
	"github.com/opentransit/editor-backend/utils"
)

func handleGetCredentials() gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := utils.CredentialsFromCtx(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"credentials": dto.AdaptCredentialDto(creds),
		})
	}
}

func handleRefreshToken(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		creds := utils.CredentialsFromCtx(ctx)

		credentialsUseCase := uc.NewCredentialsUseCase()
		token, expirationTime, err := credentialsUseCase.RefreshToken(ctx, creds)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_at":   expirationTime.Format(time.RFC3339),
		})
	}
}
