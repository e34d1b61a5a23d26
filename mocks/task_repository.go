package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories"
)

type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) CreateTask(ctx context.Context, exec repositories.Executor,
	input models.CreateTaskInput, newTaskId uuid.UUID, correlationId string,
) error {
	args := m.Called(ctx, exec, input, newTaskId, correlationId)
	return args.Error(0)
}

func (m *TaskRepository) GetTaskById(ctx context.Context, exec repositories.Executor,
	taskId uuid.UUID,
) (models.Task, error) {
	args := m.Called(ctx, exec, taskId)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *TaskRepository) GetTaskByIdForUpdate(ctx context.Context, exec repositories.Executor,
	taskId uuid.UUID,
) (models.Task, error) {
	args := m.Called(ctx, exec, taskId)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *TaskRepository) GetTaskByCorrelationId(ctx context.Context, exec repositories.Executor,
	correlationId string, forUpdate bool,
) (models.Task, error) {
	args := m.Called(ctx, exec, correlationId, forUpdate)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *TaskRepository) GetTaskByIdempotencyKey(ctx context.Context, exec repositories.Executor,
	ownerId uuid.UUID, idempotencyKey string,
) (*models.Task, error) {
	args := m.Called(ctx, exec, ownerId, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *TaskRepository) UpdateTaskStatus(ctx context.Context, exec repositories.Executor,
	input models.UpdateTaskStatusInput,
) (bool, error) {
	args := m.Called(ctx, exec, input)
	return args.Bool(0), args.Error(1)
}

func (m *TaskRepository) ListTasks(ctx context.Context, exec repositories.Executor,
	filters models.ListTasksFilters, pagination models.PaginationAndSorting,
) ([]models.Task, error) {
	args := m.Called(ctx, exec, filters, pagination)
	return args.Get(0).([]models.Task), args.Error(1)
}
