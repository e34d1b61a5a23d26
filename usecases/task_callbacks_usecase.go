package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/pure_utils"
	"github.com/opentransit/editor-backend/repositories"
	"github.com/opentransit/editor-backend/usecases/executor_factory"
	"github.com/opentransit/editor-backend/utils"
)

type TaskCallbacksRepository interface {
	GetTaskByCorrelationId(ctx context.Context, exec repositories.Executor,
		correlationId string, forUpdate bool) (models.Task, error)
	UpdateTaskStatus(ctx context.Context, exec repositories.Executor,
		input models.UpdateTaskStatusInput) (bool, error)
}

// TaskCallbacksUseCase handles status reports from the worker pool. Reports
// address tasks by correlation id and carry no principal: the recorded actor
// for audited edges is the task owner.
type TaskCallbacksUseCase struct {
	transactionFactory executor_factory.TransactionFactory
	executorFactory    executor_factory.ExecutorFactory
	repository         TaskCallbacksRepository
	audit              auditRecorder
}

func (usecase *TaskCallbacksUseCase) ReportStart(ctx context.Context, correlationId string) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		task, err := usecase.lockTask(ctx, tx, correlationId)
		if err != nil {
			return err
		}
		if task.Status.IsTerminal() {
			logLateReport(ctx, task, "start")
			return nil
		}
		if task.Status == models.TaskRunning {
			// redelivered start, already recorded
			return nil
		}
		if err := task.ValidateTransition(models.TaskRunning); err != nil {
			return err
		}

		now := time.Now()
		return usecase.applyUpdate(ctx, tx, task, models.UpdateTaskStatusInput{
			Id:             task.Id,
			Status:         models.TaskRunning,
			StartedAt:      &now,
			ExpectedStatus: task.Status,
		})
	})
}

func (usecase *TaskCallbacksUseCase) ReportProgress(ctx context.Context, correlationId string, progress float64) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		task, err := usecase.lockTask(ctx, tx, correlationId)
		if err != nil {
			return err
		}
		if task.Status.IsTerminal() {
			logLateReport(ctx, task, "progress")
			return nil
		}
		if err := task.ValidateProgress(progress); err != nil {
			return err
		}

		return usecase.applyUpdate(ctx, tx, task, models.UpdateTaskStatusInput{
			Id:             task.Id,
			Status:         models.TaskRunning,
			Progress:       &progress,
			ExpectedStatus: task.Status,
		})
	})
}

func (usecase *TaskCallbacksUseCase) ReportSuccess(ctx context.Context, correlationId string, result models.Document) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		task, err := usecase.lockTask(ctx, tx, correlationId)
		if err != nil {
			return err
		}
		if task.Status.IsTerminal() {
			logLateReport(ctx, task, "success")
			return nil
		}
		if err := task.ValidateTransition(models.TaskSucceeded); err != nil {
			return err
		}

		now := time.Now()
		if err := usecase.applyUpdate(ctx, tx, task, models.UpdateTaskStatusInput{
			Id:             task.Id,
			Status:         models.TaskSucceeded,
			Progress:       pure_utils.Ptr(100.0),
			CompletedAt:    &now,
			Result:         result,
			ExpectedStatus: task.Status,
		}); err != nil {
			return err
		}

		return usecase.recordTerminalEdge(ctx, tx, task, models.TaskSucceeded, models.Document{
			"status": models.TaskSucceeded.String(),
			"result": map[string]any(result),
		})
	})
}

func (usecase *TaskCallbacksUseCase) ReportFailure(
	ctx context.Context,
	correlationId string,
	errorMessage string,
	errorDetail models.Document,
) error {
	return usecase.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		task, err := usecase.lockTask(ctx, tx, correlationId)
		if err != nil {
			return err
		}
		if task.Status.IsTerminal() {
			logLateReport(ctx, task, "failure")
			return nil
		}
		if err := task.ValidateTransition(models.TaskFailed); err != nil {
			return err
		}

		now := time.Now()
		if err := usecase.applyUpdate(ctx, tx, task, models.UpdateTaskStatusInput{
			Id:             task.Id,
			Status:         models.TaskFailed,
			CompletedAt:    &now,
			ErrorMessage:   &errorMessage,
			ErrorDetail:    errorDetail,
			ExpectedStatus: task.Status,
		}); err != nil {
			return err
		}

		return usecase.recordTerminalEdge(ctx, tx, task, models.TaskFailed, models.Document{
			"status":        models.TaskFailed.String(),
			"error_message": errorMessage,
			"error_detail":  map[string]any(errorDetail),
		})
	})
}

// AcknowledgeCancellation records that the worker stopped the unit of work.
// The task was already moved to cancelled when the cancellation was
// requested, so there is no state to change.
func (usecase *TaskCallbacksUseCase) AcknowledgeCancellation(ctx context.Context, correlationId string) error {
	task, err := usecase.repository.GetTaskByCorrelationId(
		ctx, usecase.executorFactory.NewExecutor(), correlationId, false)
	if err != nil {
		return mapUnknownTask(err)
	}

	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Worker acknowledged task cancellation",
		"task_id", task.Id, "correlation_id", correlationId, "status", task.Status.String())
	return nil
}

func (usecase *TaskCallbacksUseCase) lockTask(
	ctx context.Context,
	tx repositories.Transaction,
	correlationId string,
) (models.Task, error) {
	task, err := usecase.repository.GetTaskByCorrelationId(ctx, tx, correlationId, true)
	if err != nil {
		return models.Task{}, mapUnknownTask(err)
	}
	return task, nil
}

// recordTerminalEdge audits a worker-reported transition into a terminal
// status, on the report's transaction.
func (usecase *TaskCallbacksUseCase) recordTerminalEdge(
	ctx context.Context,
	tx repositories.Transaction,
	task models.Task,
	target models.TaskStatus,
	after models.Document,
) error {
	_, err := usecase.audit.RecordInTransaction(ctx, tx, models.CreateAuditEntryInput{
		ActorId:    task.OwnerId,
		AgencyId:   task.AgencyId,
		Action:     models.AuditActionForTerminalStatus(target),
		EntityType: "task",
		EntityId:   task.Id.String(),
		Before:     models.Document{"status": task.Status.String()},
		After:      after,
	})
	return err
}

func (usecase *TaskCallbacksUseCase) applyUpdate(
	ctx context.Context,
	tx repositories.Transaction,
	task models.Task,
	input models.UpdateTaskStatusInput,
) error {
	updated, err := usecase.repository.UpdateTaskStatus(ctx, tx, input)
	if err != nil {
		return err
	}
	if !updated {
		// cannot happen while we hold the row lock
		return errors.Wrapf(models.ErrInvalidTransition, "task %s moved during update", task.Id)
	}
	return nil
}

func mapUnknownTask(err error) error {
	if errors.Is(err, models.NotFoundError) {
		return errors.WithDetail(models.ErrUnknownTask, err.Error())
	}
	return err
}

func logLateReport(ctx context.Context, task models.Task, report string) {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Ignoring late worker report on terminal task",
		"task_id", task.Id,
		"correlation_id", task.CorrelationId,
		"status", task.Status.String(),
		"report", report)
}
