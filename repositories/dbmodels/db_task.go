package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/utils"
)

type DbTask struct {
	Id             uuid.UUID       `db:"id"`
	CorrelationId  string          `db:"correlation_id"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	Type           string          `db:"type"`
	OwnerId        uuid.UUID       `db:"owner_id"`
	AgencyId       *uuid.UUID      `db:"agency_id"`
	Status         string          `db:"status"`
	Progress       float64         `db:"progress"`
	StartedAt      *time.Time      `db:"started_at"`
	CompletedAt    *time.Time      `db:"completed_at"`
	ErrorMessage   null.String     `db:"error_message"`
	ErrorDetail    json.RawMessage `db:"error_detail"`
	Input          json.RawMessage `db:"input"`
	Result         json.RawMessage `db:"result"`
	IdempotencyKey string          `db:"idempotency_key"`
	CreatedAt      time.Time       `db:"created_at"`
}

const TABLE_TASKS = "tasks"

var SelectTaskColumns = utils.EscapedColumnList[DbTask]()

func AdaptTask(db DbTask) (models.Task, error) {
	input, err := AdaptDocument(db.Input)
	if err != nil {
		return models.Task{}, err
	}
	result, err := AdaptDocument(db.Result)
	if err != nil {
		return models.Task{}, err
	}
	errorDetail, err := AdaptDocument(db.ErrorDetail)
	if err != nil {
		return models.Task{}, err
	}

	return models.Task{
		Id:            db.Id,
		CorrelationId: db.CorrelationId,
		Name:          db.Name,
		Description:   db.Description,
		Type:          models.TaskType(db.Type),
		OwnerId:       db.OwnerId,
		AgencyId:      db.AgencyId,
		Status:        models.TaskStatusFromString(db.Status),
		Progress:      db.Progress,
		StartedAt:     db.StartedAt,
		CompletedAt:   db.CompletedAt,
		ErrorMessage:  db.ErrorMessage.Ptr(),
		ErrorDetail:   errorDetail,
		Input:         input,
		Result:        result,
		CreatedAt:     db.CreatedAt,
	}, nil
}

type DbTaskWithOwner struct {
	DbTask
	OwnerName null.String `db:"owner_name"`
}

func AdaptTaskWithOwner(db DbTaskWithOwner) (models.Task, error) {
	task, err := AdaptTask(db.DbTask)
	if err != nil {
		return models.Task{}, err
	}
	task.OwnerName = db.OwnerName.ValueOrZero()
	return task, nil
}
