package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"

	"github.com/opentransit/editor-backend/usecases"
)

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(duration),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(c *gin.Context) {
			c.String(http.StatusRequestTimeout, "timeout")
		}),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))

	tom := timeoutMiddleware(conf.DefaultTimeout)

	router := r.Group("/", credentialsMiddleware(uc))

	router.GET("/credentials", tom, handleGetCredentials())
	router.POST("/token/refresh", tom, handleRefreshToken(uc))

	router.GET("/tasks", tom, handleListTasks(uc))
	router.POST("/tasks", tom, handleCreateTask(uc))
	router.GET("/tasks/:task_id", tom, handleGetTask(uc))
	router.POST("/tasks/:task_id/cancel", tom, handleCancelTask(uc))

	router.GET("/audit-entries", tom, handleListAuditEntries(uc))
	router.GET("/audit-entries/aggregate", tom, handleAggregateAuditEntries(uc))

	worker := r.Group("/worker", workerAuthMiddleware(uc))

	worker.POST("/tasks/:correlation_id/start", tom, handleReportTaskStart(uc))
	worker.POST("/tasks/:correlation_id/progress", tom, handleReportTaskProgress(uc))
	worker.POST("/tasks/:correlation_id/success", tom, handleReportTaskSuccess(uc))
	worker.POST("/tasks/:correlation_id/failure", tom, handleReportTaskFailure(uc))
	worker.POST("/tasks/:correlation_id/cancelled-ack", tom, handleAcknowledgeTaskCancellation(uc))
}
