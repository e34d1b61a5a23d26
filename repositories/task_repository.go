package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories/dbmodels"
)

func selectTasksWithOwner() squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(append(
			columnsNames("t", dbmodels.SelectTaskColumns),
			"p.first_name || ' ' || p.last_name as owner_name",
		)...).
		From(dbmodels.TABLE_TASKS + " t").
		LeftJoin(dbmodels.TABLE_PRINCIPALS + " p on p.id = t.owner_id")
}

func (repo EditorDbRepository) CreateTask(
	ctx context.Context,
	exec Executor,
	input models.CreateTaskInput,
	newTaskId uuid.UUID,
	correlationId string,
) error {
	serializedInput, err := dbmodels.SerializeDocument(input.Input)
	if err != nil {
		return errors.Wrap(err, "could not serialize task input")
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_TASKS).
			Columns(
				"id",
				"correlation_id",
				"name",
				"description",
				"type",
				"owner_id",
				"agency_id",
				"status",
				"input",
				"idempotency_key",
			).
			Values(
				newTaskId,
				correlationId,
				input.Name,
				input.Description,
				input.Type,
				input.OwnerId,
				input.AgencyId,
				models.TaskPending.String(),
				serializedInput,
				input.IdempotencyKey,
			),
	)
}

func (repo EditorDbRepository) GetTaskById(ctx context.Context, exec Executor, taskId uuid.UUID) (models.Task, error) {
	query := selectTasksWithOwner().Where("t.id = ?", taskId)

	return SqlToModel(ctx, exec, query, dbmodels.AdaptTaskWithOwner)
}

// GetTaskByCorrelationId optionally locks the row, so that concurrent status
// reports on the same task serialize on it. The lock requires a plain select
// without the owner join.
func (repo EditorDbRepository) GetTaskByCorrelationId(
	ctx context.Context,
	exec Executor,
	correlationId string,
	forUpdate bool,
) (models.Task, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectTaskColumns...).
		From(dbmodels.TABLE_TASKS).
		Where("correlation_id = ?", correlationId)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return SqlToModel(ctx, exec, query, dbmodels.AdaptTask)
}

func (repo EditorDbRepository) GetTaskByIdForUpdate(ctx context.Context, exec Executor, taskId uuid.UUID) (models.Task, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectTaskColumns...).
		From(dbmodels.TABLE_TASKS).
		Where("id = ?", taskId).
		Suffix("FOR UPDATE")

	return SqlToModel(ctx, exec, query, dbmodels.AdaptTask)
}

func (repo EditorDbRepository) GetTaskByIdempotencyKey(
	ctx context.Context,
	exec Executor,
	ownerId uuid.UUID,
	idempotencyKey string,
) (*models.Task, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectTaskColumns...).
		From(dbmodels.TABLE_TASKS).
		Where("owner_id = ?", ownerId).
		Where("idempotency_key = ?", idempotencyKey)

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptTask)
}

// UpdateTaskStatus applies the update only if the row still carries the
// expected status. Returns false when the guard did not match, meaning the
// task moved under us and the caller should re-read it.
func (repo EditorDbRepository) UpdateTaskStatus(
	ctx context.Context,
	exec Executor,
	input models.UpdateTaskStatusInput,
) (bool, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_TASKS).
		Set("status", input.Status.String()).
		Where("id = ?", input.Id).
		Where("status = ?", input.ExpectedStatus.String())

	if input.Progress != nil {
		query = query.Set("progress", *input.Progress)
	}
	if input.StartedAt != nil {
		query = query.Set("started_at", *input.StartedAt)
	}
	if input.CompletedAt != nil {
		query = query.Set("completed_at", *input.CompletedAt)
	}
	if input.ErrorMessage != nil {
		query = query.Set("error_message", *input.ErrorMessage)
	}
	if input.ErrorDetail != nil {
		serialized, err := dbmodels.SerializeDocument(input.ErrorDetail)
		if err != nil {
			return false, errors.Wrap(err, "could not serialize task error detail")
		}
		query = query.Set("error_detail", serialized)
	}
	if input.Result != nil {
		serialized, err := dbmodels.SerializeDocument(input.Result)
		if err != nil {
			return false, errors.Wrap(err, "could not serialize task result")
		}
		query = query.Set("result", serialized)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, errors.Wrap(err, "can't build sql query")
	}
	tag, err := exec.Exec(ctx, sql, args...)
	if err != nil {
		return false, errors.Wrap(err, "error updating task status")
	}
	return tag.RowsAffected() > 0, nil
}

func (repo EditorDbRepository) ListTasks(
	ctx context.Context,
	exec Executor,
	filters models.ListTasksFilters,
	pagination models.PaginationAndSorting,
) ([]models.Task, error) {
	query := selectTasksWithOwner().
		OrderBy("t.created_at desc, t.id desc").
		Limit(uint64(pagination.Limit))

	if pagination.OffsetId != "" {
		cursorId, err := uuid.Parse(pagination.OffsetId)
		if err != nil {
			return nil, errors.Wrap(models.BadParameterError, "invalid pagination cursor")
		}
		cursor, err := repo.GetTaskById(ctx, exec, cursorId)
		if err != nil {
			return nil, errors.Wrap(err, "could not retrieve cursor task")
		}

		query = query.Where("(t.created_at, t.id) < (?, ?)", cursor.CreatedAt, cursor.Id)
	}
	if filters.OwnerId != nil {
		query = query.Where("t.owner_id = ?", *filters.OwnerId)
	}
	if filters.AgencyId != nil {
		query = query.Where("t.agency_id = ?", *filters.AgencyId)
	}
	if filters.Status != nil {
		query = query.Where("t.status = ?", filters.Status.String())
	}
	if filters.Type != nil {
		query = query.Where("t.type = ?", string(*filters.Type))
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptTaskWithOwner)
}
