package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories"
)

type PrincipalRepository struct {
	mock.Mock
}

func (m *PrincipalRepository) GetPrincipalById(ctx context.Context, exec repositories.Executor,
	principalId uuid.UUID,
) (models.Principal, error) {
	args := m.Called(ctx, exec, principalId)
	return args.Get(0).(models.Principal), args.Error(1)
}
