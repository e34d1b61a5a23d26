package usecases

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories"
	"github.com/opentransit/editor-backend/usecases/executor_factory"
	"github.com/opentransit/editor-backend/usecases/security"
	"github.com/opentransit/editor-backend/utils"
)

type TaskUseCaseRepository interface {
	CreateTask(ctx context.Context, exec repositories.Executor,
		input models.CreateTaskInput, newTaskId uuid.UUID, correlationId string) error
	GetTaskById(ctx context.Context, exec repositories.Executor, taskId uuid.UUID) (models.Task, error)
	GetTaskByIdForUpdate(ctx context.Context, exec repositories.Executor, taskId uuid.UUID) (models.Task, error)
	GetTaskByIdempotencyKey(ctx context.Context, exec repositories.Executor,
		ownerId uuid.UUID, idempotencyKey string) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, exec repositories.Executor,
		input models.UpdateTaskStatusInput) (bool, error)
	ListTasks(ctx context.Context, exec repositories.Executor,
		filters models.ListTasksFilters, pagination models.PaginationAndSorting) ([]models.Task, error)
}

type auditRecorder interface {
	RecordInTransaction(ctx context.Context, tx repositories.Transaction,
		input models.CreateAuditEntryInput) (uuid.UUID, error)
}

type TaskUseCase struct {
	enforceSecurity    security.EnforceSecurityTask
	transactionFactory executor_factory.TransactionFactory
	executorFactory    executor_factory.ExecutorFactory
	repository         TaskUseCaseRepository
	taskQueue          repositories.TaskQueueRepository
	audit              auditRecorder
	credentials        models.Credentials
}

// CreateTask registers the task and enqueues its dispatch job in a single
// transaction: either both are committed or neither is. When the caller
// provides an idempotency key, re-submissions return the already registered
// task without enqueueing a second job.
func (usecase *TaskUseCase) CreateTask(ctx context.Context, input models.CreateTaskInput) (models.Task, error) {
	if !input.Type.IsValid() {
		return models.Task{}, errors.Wrapf(models.BadParameterError, "unknown task type %s", input.Type)
	}
	// The owner is always the authenticated caller.
	input.OwnerId = usecase.credentials.Principal.Id

	if err := usecase.enforceSecurity.CreateTask(input); err != nil {
		return models.Task{}, err
	}

	task, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Task, error) {
			if input.IdempotencyKey != "" {
				existing, err := usecase.repository.GetTaskByIdempotencyKey(
					ctx, tx, input.OwnerId, input.IdempotencyKey)
				if err != nil {
					return models.Task{}, err
				}
				if existing != nil {
					return *existing, nil
				}
			}

			newTaskId := uuid.New()
			correlationId := uuid.NewString()
			if err := usecase.repository.CreateTask(ctx, tx, input, newTaskId, correlationId); err != nil {
				return models.Task{}, err
			}

			task, err := usecase.repository.GetTaskById(ctx, tx, newTaskId)
			if err != nil {
				return models.Task{}, err
			}

			if err := usecase.taskQueue.EnqueueTaskDispatch(ctx, tx, task); err != nil {
				return models.Task{}, err
			}
			return task, nil
		})
	if err != nil {
		// A concurrent submission with the same idempotency key won the race.
		if repositories.IsUniqueViolationError(err) && input.IdempotencyKey != "" {
			existing, lookupErr := usecase.repository.GetTaskByIdempotencyKey(
				ctx, usecase.executorFactory.NewExecutor(), input.OwnerId, input.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return *existing, nil
			}
		}
		if repositories.IsUniqueViolationError(err) {
			return models.Task{}, errors.Wrap(models.ConflictError, "task already registered")
		}
		return models.Task{}, err
	}
	return task, nil
}

func (usecase *TaskUseCase) GetTask(ctx context.Context, taskId uuid.UUID) (models.Task, error) {
	task, err := usecase.repository.GetTaskById(ctx, usecase.executorFactory.NewExecutor(), taskId)
	if err != nil {
		return models.Task{}, err
	}
	if err := usecase.enforceSecurity.ReadTask(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (usecase *TaskUseCase) ListTasks(
	ctx context.Context,
	filters models.ListTasksFilters,
	pagination models.PaginationAndSorting,
) ([]models.Task, error) {
	if err := usecase.enforceSecurity.ListTasks(filters); err != nil {
		return nil, err
	}

	return usecase.repository.ListTasks(
		ctx,
		usecase.executorFactory.NewExecutor(),
		filters,
		models.WithPaginationDefaults(pagination),
	)
}

// CancelTask moves the task to cancelled and audits the transition, then
// notifies the worker pool. The notification is best effort: the task is
// already cancelled of record, a worker that missed the notice gets a
// cancelled-ack the next time it reports.
func (usecase *TaskUseCase) CancelTask(
	ctx context.Context,
	taskId uuid.UUID,
	provenance *models.AuditProvenance,
) (models.Task, error) {
	task, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Task, error) {
			// The row lock serializes this against concurrent worker reports.
			task, err := usecase.repository.GetTaskByIdForUpdate(ctx, tx, taskId)
			if err != nil {
				return models.Task{}, err
			}
			if err := usecase.enforceSecurity.CancelTask(task); err != nil {
				return models.Task{}, err
			}
			if err := task.ValidateTransition(models.TaskCancelled); err != nil {
				return models.Task{}, err
			}

			now := time.Now()
			updated, err := usecase.repository.UpdateTaskStatus(ctx, tx, models.UpdateTaskStatusInput{
				Id:             task.Id,
				Status:         models.TaskCancelled,
				CompletedAt:    &now,
				ExpectedStatus: task.Status,
			})
			if err != nil {
				return models.Task{}, err
			}
			if !updated {
				return models.Task{}, errors.Wrapf(models.ErrInvalidTransition,
					"task %s moved while cancelling", task.Id)
			}

			_, err = usecase.audit.RecordInTransaction(ctx, tx, models.CreateAuditEntryInput{
				ActorId:    usecase.credentials.ActorIdentity.PrincipalId,
				AgencyId:   task.AgencyId,
				Action:     models.AuditTaskCancelled,
				EntityType: "task",
				EntityId:   task.Id.String(),
				Before:     models.Document{"status": task.Status.String()},
				After:      models.Document{"status": models.TaskCancelled.String()},
				Provenance: provenance,
			})
			if err != nil {
				return models.Task{}, err
			}

			return usecase.repository.GetTaskById(ctx, tx, task.Id)
		})
	if err != nil {
		return models.Task{}, err
	}

	usecase.notifyCancellation(ctx, task.CorrelationId)

	return task, nil
}

func (usecase *TaskUseCase) notifyCancellation(ctx context.Context, correlationId string) {
	logger := utils.LoggerFromContext(ctx)
	err := retry.Do(
		func() error {
			return usecase.taskQueue.EnqueueTaskCancelNotice(ctx, correlationId)
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		logger.WarnContext(ctx, "Could not enqueue cancel notice for task: "+err.Error(),
			"correlation_id", correlationId)
	}
}
