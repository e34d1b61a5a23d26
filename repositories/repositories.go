package repositories

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"

	"github.com/opentransit/editor-backend/pure_utils"
)

// EditorDbRepository carries the query methods against the editor database.
type EditorDbRepository struct{}

type Repositories struct {
	ExecutorGetter      ExecutorGetter
	EditorDbRepository  EditorDbRepository
	TaskQueueRepository TaskQueueRepository
}

func NewRepositories(pool *pgxpool.Pool, riverClient *river.Client[pgx.Tx]) Repositories {
	return Repositories{
		ExecutorGetter:      NewExecutorGetter(pool),
		EditorDbRepository:  EditorDbRepository{},
		TaskQueueRepository: NewTaskQueueRepository(riverClient),
	}
}

func columnsNames(tablename string, fields []string) []string {
	return pure_utils.Map(fields, func(f string) string {
		return fmt.Sprintf("%s.%s", tablename, f)
	})
}
