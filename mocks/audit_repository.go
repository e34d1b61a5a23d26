package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories"
)

type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) CreateAuditEntry(ctx context.Context, exec repositories.Executor,
	input models.CreateAuditEntryInput, newEntryId uuid.UUID,
) error {
	args := m.Called(ctx, exec, input, newEntryId)
	return args.Error(0)
}

func (m *AuditRepository) GetAuditEntry(ctx context.Context, exec repositories.Executor,
	id uuid.UUID,
) (models.AuditEntry, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(models.AuditEntry), args.Error(1)
}

func (m *AuditRepository) ListAuditEntries(ctx context.Context, exec repositories.Executor,
	filters models.AuditEntryFilters, pagination models.PaginationAndSorting,
) ([]models.AuditEntry, error) {
	args := m.Called(ctx, exec, filters, pagination)
	return args.Get(0).([]models.AuditEntry), args.Error(1)
}

func (m *AuditRepository) CountAuditEntriesByAction(ctx context.Context, exec repositories.Executor,
	filters models.AuditEntryFilters,
) (map[models.AuditAction]int, error) {
	args := m.Called(ctx, exec, filters)
	return args.Get(0).(map[models.AuditAction]int), args.Error(1)
}

func (m *AuditRepository) CountAuditEntriesByEntityType(ctx context.Context, exec repositories.Executor,
	filters models.AuditEntryFilters,
) (map[string]int, error) {
	args := m.Called(ctx, exec, filters)
	return args.Get(0).(map[string]int), args.Error(1)
}

// AuditRecorder mocks the transactional audit write used by other usecases.
type AuditRecorder struct {
	mock.Mock
}

func (m *AuditRecorder) RecordInTransaction(ctx context.Context, tx repositories.Transaction,
	input models.CreateAuditEntryInput,
) (uuid.UUID, error) {
	args := m.Called(ctx, tx, input)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
