package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cockroachdb/errors"

	"github.com/opentransit/editor-backend/dto"
	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/pure_utils"
	"github.com/opentransit/editor-backend/usecases"
)

func handleCreateTask(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateTaskBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		taskUseCase := usecasesWithCreds(ctx, uc).NewTaskUseCase()
		task, err := taskUseCase.CreateTask(ctx, models.CreateTaskInput{
			Name:           body.Name,
			Description:    body.Description,
			Type:           models.TaskType(body.Type),
			AgencyId:       body.AgencyId,
			Input:          body.Input,
			IdempotencyKey: body.IdempotencyKey,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, dto.AdaptTaskDto(task))
	}
}

func handleGetTask(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		taskId, err := uuid.Parse(c.Param("task_id"))
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid task id"))
			return
		}

		taskUseCase := usecasesWithCreds(ctx, uc).NewTaskUseCase()
		task, err := taskUseCase.GetTask(ctx, taskId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptTaskDto(task))
	}
}

func handleListTasks(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var filters dto.ListTasksFilters
		if err := c.ShouldBindQuery(&filters); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		modelFilters := models.ListTasksFilters{
			OwnerId:  filters.OwnerId,
			AgencyId: filters.AgencyId,
		}
		if filters.Status != "" {
			status := models.TaskStatusFromString(filters.Status)
			modelFilters.Status = &status
		}
		if filters.Type != "" {
			taskType := models.TaskType(filters.Type)
			if !taskType.IsValid() {
				presentError(ctx, c, errors.Wrapf(models.BadParameterError,
					"unknown task type %s", filters.Type))
				return
			}
			modelFilters.Type = &taskType
		}

		taskUseCase := usecasesWithCreds(ctx, uc).NewTaskUseCase()
		tasks, err := taskUseCase.ListTasks(ctx, modelFilters, models.PaginationAndSorting{
			OffsetId: filters.After,
			Limit:    filters.Limit,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, pure_utils.Map(tasks, dto.AdaptTaskDto))
	}
}

func handleCancelTask(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		taskId, err := uuid.Parse(c.Param("task_id"))
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid task id"))
			return
		}

		taskUseCase := usecasesWithCreds(ctx, uc).NewTaskUseCase()
		task, err := taskUseCase.CancelTask(ctx, taskId, &models.AuditProvenance{
			Origin:    c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptTaskDto(task))
	}
}
