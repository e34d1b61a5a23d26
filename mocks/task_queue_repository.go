package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (m *TaskQueueRepository) EnqueueTaskDispatch(ctx context.Context,
	tx repositories.Transaction, task models.Task,
) error {
	args := m.Called(ctx, tx, task)
	return args.Error(0)
}

func (m *TaskQueueRepository) EnqueueTaskCancelNotice(ctx context.Context, correlationId string) error {
	args := m.Called(ctx, correlationId)
	return args.Error(0)
}
