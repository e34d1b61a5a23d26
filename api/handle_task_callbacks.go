package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opentransit/editor-backend/dto"
	"github.com/opentransit/editor-backend/usecases"
)

// Callback routes used by the worker pool to report on task execution.
// They address tasks by correlation id, not by task id.

func handleReportTaskStart(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		callbacks := uc.NewTaskCallbacksUseCase()
		err := callbacks.ReportStart(ctx, c.Param("correlation_id"))
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleReportTaskProgress(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ReportProgressBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		callbacks := uc.NewTaskCallbacksUseCase()
		err := callbacks.ReportProgress(ctx, c.Param("correlation_id"), *body.Progress)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleReportTaskSuccess(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ReportSuccessBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		callbacks := uc.NewTaskCallbacksUseCase()
		err := callbacks.ReportSuccess(ctx, c.Param("correlation_id"), body.Result)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleReportTaskFailure(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ReportFailureBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		callbacks := uc.NewTaskCallbacksUseCase()
		err := callbacks.ReportFailure(ctx, c.Param("correlation_id"), body.ErrorMessage, body.ErrorDetail)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleAcknowledgeTaskCancellation(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		callbacks := uc.NewTaskCallbacksUseCase()
		err := callbacks.AcknowledgeCancellation(ctx, c.Param("correlation_id"))
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
