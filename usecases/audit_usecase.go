package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/pure_utils"
	"github.com/opentransit/editor-backend/repositories"
	"github.com/opentransit/editor-backend/usecases/executor_factory"
	"github.com/opentransit/editor-backend/usecases/security"
)

type AuditUseCaseRepository interface {
	CreateAuditEntry(ctx context.Context, exec repositories.Executor,
		input models.CreateAuditEntryInput, newEntryId uuid.UUID) error
	GetAuditEntry(ctx context.Context, exec repositories.Executor, id uuid.UUID) (models.AuditEntry, error)
	ListAuditEntries(ctx context.Context, exec repositories.Executor,
		filters models.AuditEntryFilters, pagination models.PaginationAndSorting) ([]models.AuditEntry, error)
	CountAuditEntriesByAction(ctx context.Context, exec repositories.Executor,
		filters models.AuditEntryFilters) (map[models.AuditAction]int, error)
	CountAuditEntriesByEntityType(ctx context.Context, exec repositories.Executor,
		filters models.AuditEntryFilters) (map[string]int, error)
}

type AuditUseCase struct {
	enforceSecurity    security.EnforceSecurityAudit
	transactionFactory executor_factory.TransactionFactory
	executorFactory    executor_factory.ExecutorFactory
	repository         AuditUseCaseRepository
}

// RecordInTransaction writes an audit entry on the caller's transaction, so
// the entry commits or rolls back together with the mutation it describes.
// Payloads are sanitized before they are persisted; the caller's documents
// are not modified.
func (usecase *AuditUseCase) RecordInTransaction(
	ctx context.Context,
	tx repositories.Transaction,
	input models.CreateAuditEntryInput,
) (uuid.UUID, error) {
	input.Before = pure_utils.RedactSensitiveKeys(input.Before)
	input.After = pure_utils.RedactSensitiveKeys(input.After)

	newEntryId := uuid.New()
	if err := usecase.repository.CreateAuditEntry(ctx, tx, input, newEntryId); err != nil {
		return uuid.Nil, err
	}
	return newEntryId, nil
}

// Record writes a standalone audit entry in its own transaction, for actions
// that do not mutate tenant data (logins, exports).
func (usecase *AuditUseCase) Record(ctx context.Context, input models.CreateAuditEntryInput) (uuid.UUID, error) {
	return executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (uuid.UUID, error) {
			return usecase.RecordInTransaction(ctx, tx, input)
		})
}

func (usecase *AuditUseCase) ListAuditEntries(
	ctx context.Context,
	filters models.AuditEntryFilters,
	pagination models.PaginationAndSorting,
) ([]models.AuditEntry, error) {
	if err := usecase.enforceSecurity.ReadAuditEntries(filters); err != nil {
		return nil, err
	}

	return usecase.repository.ListAuditEntries(
		ctx,
		usecase.executorFactory.NewExecutor(),
		filters,
		models.WithPaginationDefaults(pagination),
	)
}

func (usecase *AuditUseCase) AggregateAuditEntries(
	ctx context.Context,
	filters models.AuditEntryFilters,
) (models.AuditAggregate, error) {
	if err := usecase.enforceSecurity.ReadAuditEntries(filters); err != nil {
		return models.AuditAggregate{}, err
	}

	exec := usecase.executorFactory.NewExecutor()
	byAction, err := usecase.repository.CountAuditEntriesByAction(ctx, exec, filters)
	if err != nil {
		return models.AuditAggregate{}, err
	}
	byEntityType, err := usecase.repository.CountAuditEntriesByEntityType(ctx, exec, filters)
	if err != nil {
		return models.AuditAggregate{}, err
	}

	return models.AuditAggregate{
		ByAction:     byAction,
		ByEntityType: byEntityType,
	}, nil
}
