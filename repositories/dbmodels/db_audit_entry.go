package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/utils"
)

type DbAuditEntry struct {
	Id           uuid.UUID       `db:"id"`
	ActorId      uuid.UUID       `db:"actor_id"`
	AgencyId     *uuid.UUID      `db:"agency_id"`
	Action       string          `db:"action"`
	EntityType   string          `db:"entity_type"`
	EntityId     string          `db:"entity_id"`
	Description  *string         `db:"description"`
	PreviousData json.RawMessage `db:"previous_data"`
	NewData      json.RawMessage `db:"new_data"`
	Origin       *string         `db:"origin"`
	UserAgent    *string         `db:"user_agent"`
	CreatedAt    time.Time       `db:"created_at"`
}

const TABLE_AUDIT_ENTRIES = "audit_entries"

var SelectAuditEntryColumns = utils.EscapedColumnList[DbAuditEntry]()

func AdaptAuditEntry(db DbAuditEntry) (models.AuditEntry, error) {
	before, err := AdaptDocument(db.PreviousData)
	if err != nil {
		return models.AuditEntry{}, err
	}
	after, err := AdaptDocument(db.NewData)
	if err != nil {
		return models.AuditEntry{}, err
	}

	return models.AuditEntry{
		Id:          db.Id,
		ActorId:     db.ActorId,
		AgencyId:    db.AgencyId,
		Action:      models.AuditAction(db.Action),
		EntityType:  db.EntityType,
		EntityId:    db.EntityId,
		Description: db.Description,
		Before:      before,
		After:       after,
		Origin:      db.Origin,
		UserAgent:   db.UserAgent,
		CreatedAt:   db.CreatedAt,
	}, nil
}

type DbAuditEntryWithActor struct {
	DbAuditEntry
	ActorName null.String `db:"actor_name"`
}

func AdaptAuditEntryWithActor(db DbAuditEntryWithActor) (models.AuditEntry, error) {
	entry, err := AdaptAuditEntry(db.DbAuditEntry)
	if err != nil {
		return models.AuditEntry{}, err
	}
	entry.ActorName = db.ActorName.ValueOrZero()
	return entry, nil
}
