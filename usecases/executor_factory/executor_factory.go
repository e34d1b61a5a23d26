package executor_factory

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/opentransit/editor-backend/repositories"
)

type ExecutorFactory interface {
	NewExecutor() repositories.Executor
}

type TransactionFactory interface {
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
	// SnapshotTransaction runs fn at repeatable read isolation: every
	// statement reads the same database snapshot, so multi-statement reads
	// cannot observe two different moments.
	SnapshotTransaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
}

// interface used by the class
type executorFactoryRepository interface {
	GetExecutor() repositories.Executor
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
	TransactionWithOptions(ctx context.Context, txOptions pgx.TxOptions,
		fn func(tx repositories.Transaction) error) error
}

type DbExecutorFactory struct {
	executorGetter executorFactoryRepository
}

func NewDbExecutorFactory(executorGetter executorFactoryRepository) DbExecutorFactory {
	return DbExecutorFactory{
		executorGetter: executorGetter,
	}
}

func (factory DbExecutorFactory) NewExecutor() repositories.Executor {
	return factory.executorGetter.GetExecutor()
}

func (factory DbExecutorFactory) Transaction(
	ctx context.Context,
	f func(tx repositories.Transaction) error,
) error {
	return factory.executorGetter.Transaction(ctx, f)
}

func (factory DbExecutorFactory) SnapshotTransaction(
	ctx context.Context,
	f func(tx repositories.Transaction) error,
) error {
	return factory.executorGetter.TransactionWithOptions(ctx,
		pgx.TxOptions{IsoLevel: pgx.RepeatableRead}, f)
}
