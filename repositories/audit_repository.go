package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories/dbmodels"
)

func (repo EditorDbRepository) CreateAuditEntry(
	ctx context.Context,
	exec Executor,
	input models.CreateAuditEntryInput,
	newEntryId uuid.UUID,
) error {
	previousData, err := dbmodels.SerializeDocument(input.Before)
	if err != nil {
		return errors.Wrap(err, "could not serialize audit previous data")
	}
	newData, err := dbmodels.SerializeDocument(input.After)
	if err != nil {
		return errors.Wrap(err, "could not serialize audit new data")
	}

	var origin, userAgent *string
	if input.Provenance != nil {
		if input.Provenance.Origin != "" {
			origin = &input.Provenance.Origin
		}
		if input.Provenance.UserAgent != "" {
			userAgent = &input.Provenance.UserAgent
		}
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_AUDIT_ENTRIES).
			Columns(
				"id",
				"actor_id",
				"agency_id",
				"action",
				"entity_type",
				"entity_id",
				"description",
				"previous_data",
				"new_data",
				"origin",
				"user_agent",
			).
			Values(
				newEntryId,
				input.ActorId,
				input.AgencyId,
				string(input.Action),
				input.EntityType,
				input.EntityId,
				input.Description,
				previousData,
				newData,
				origin,
				userAgent,
			),
	)
}

func (repo EditorDbRepository) GetAuditEntry(ctx context.Context, exec Executor, id uuid.UUID) (models.AuditEntry, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAuditEntryColumns...).
		From(dbmodels.TABLE_AUDIT_ENTRIES).
		Where("id = ?", id)

	return SqlToModel(ctx, exec, query, dbmodels.AdaptAuditEntry)
}

func (repo EditorDbRepository) ListAuditEntries(
	ctx context.Context,
	exec Executor,
	filters models.AuditEntryFilters,
	pagination models.PaginationAndSorting,
) ([]models.AuditEntry, error) {
	query := NewQueryBuilder().
		Select(append(
			columnsNames("ae", dbmodels.SelectAuditEntryColumns),
			"p.first_name || ' ' || p.last_name as actor_name",
		)...).
		From(dbmodels.TABLE_AUDIT_ENTRIES+" ae").
		LeftJoin(dbmodels.TABLE_PRINCIPALS+" p on p.id = ae.actor_id").
		OrderBy("ae.created_at desc, ae.id desc").
		Limit(uint64(pagination.Limit))

	if pagination.OffsetId != "" {
		cursorId, err := uuid.Parse(pagination.OffsetId)
		if err != nil {
			return nil, errors.Wrap(models.BadParameterError, "invalid pagination cursor")
		}
		cursor, err := repo.GetAuditEntry(ctx, exec, cursorId)
		if err != nil {
			return nil, errors.Wrap(err, "could not retrieve cursor entry")
		}

		query = query.Where("(ae.created_at, ae.id) < (?, ?)", cursor.CreatedAt, cursor.Id)
	}

	query = applyAuditEntryFilters(query, "ae", filters)

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAuditEntryWithActor)
}

func applyAuditEntryFilters(query squirrel.SelectBuilder, prefix string, filters models.AuditEntryFilters) squirrel.SelectBuilder {
	if filters.AgencyId != nil {
		query = query.Where(prefix+".agency_id = ?", *filters.AgencyId)
	}
	if filters.ActorId != nil {
		query = query.Where(prefix+".actor_id = ?", *filters.ActorId)
	}
	if filters.EntityType != "" {
		query = query.Where(prefix+".entity_type = ?", filters.EntityType)
	}
	if filters.Action != "" {
		query = query.Where(prefix+".action = ?", string(filters.Action))
	}
	if !filters.From.IsZero() {
		query = query.Where(prefix+".created_at >= ?", filters.From)
	}
	if !filters.To.IsZero() {
		query = query.Where(prefix+".created_at <= ?", filters.To)
	}
	return query
}

type dbCountByKey struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

func (repo EditorDbRepository) countAuditEntriesBy(
	ctx context.Context,
	exec Executor,
	column string,
	filters models.AuditEntryFilters,
) (map[string]int, error) {
	query := NewQueryBuilder().
		Select(column+" as key", "count(*) as count").
		From(dbmodels.TABLE_AUDIT_ENTRIES + " ae").
		GroupBy(column)

	query = applyAuditEntryFilters(query, "ae", filters)

	counts, err := SqlToListOfModels(ctx, exec, query,
		func(db dbCountByKey) (dbCountByKey, error) { return db, nil })
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Key] = c.Count
	}
	return out, nil
}

func (repo EditorDbRepository) CountAuditEntriesByAction(
	ctx context.Context,
	exec Executor,
	filters models.AuditEntryFilters,
) (map[models.AuditAction]int, error) {
	counts, err := repo.countAuditEntriesBy(ctx, exec, "ae.action", filters)
	if err != nil {
		return nil, err
	}
	out := make(map[models.AuditAction]int, len(counts))
	for key, count := range counts {
		out[models.AuditAction(key)] = count
	}
	return out, nil
}

func (repo EditorDbRepository) CountAuditEntriesByEntityType(
	ctx context.Context,
	exec Executor,
	filters models.AuditEntryFilters,
) (map[string]int, error) {
	return repo.countAuditEntriesBy(ctx, exec, "ae.entity_type", filters)
}
