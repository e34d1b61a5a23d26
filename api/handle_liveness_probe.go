package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opentransit/editor-backend/usecases"
)

func handleLivenessProbe(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewLivenessUseCase()
		if presentError(ctx, c, usecase.Liveness(ctx)) {
			return
		}

		appName, apiVersion := usecase.Version()
		c.JSON(http.StatusOK, gin.H{
			"app":     appName,
			"version": apiVersion,
		})
	}
}
