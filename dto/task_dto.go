package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
)

type Task struct {
	Id            uuid.UUID      `json:"id"`
	CorrelationId string         `json:"correlation_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Type          string         `json:"type"`
	OwnerId       uuid.UUID      `json:"owner_id"`
	OwnerName     string         `json:"owner_name,omitempty"`
	AgencyId      *uuid.UUID     `json:"agency_id,omitempty"`
	Status        string         `json:"status"`
	Progress      float64        `json:"progress"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	ErrorMessage  *string        `json:"error_message,omitempty"`
	ErrorDetail   map[string]any `json:"error_detail,omitempty"`
	Input         map[string]any `json:"input,omitempty"`
	Result        map[string]any `json:"result,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func AdaptTaskDto(m models.Task) Task {
	return Task{
		Id:            m.Id,
		CorrelationId: m.CorrelationId,
		Name:          m.Name,
		Description:   m.Description,
		Type:          string(m.Type),
		OwnerId:       m.OwnerId,
		OwnerName:     m.OwnerName,
		AgencyId:      m.AgencyId,
		Status:        m.Status.String(),
		Progress:      m.Progress,
		StartedAt:     m.StartedAt,
		CompletedAt:   m.CompletedAt,
		ErrorMessage:  m.ErrorMessage,
		ErrorDetail:   m.ErrorDetail,
		Input:         m.Input,
		Result:        m.Result,
		CreatedAt:     m.CreatedAt,
	}
}

type CreateTaskBody struct {
	Name           string         `json:"name" binding:"required"`
	Description    string         `json:"description"`
	Type           string         `json:"type" binding:"required"`
	AgencyId       *uuid.UUID     `json:"agency_id"`
	Input          map[string]any `json:"input"`
	IdempotencyKey string         `json:"idempotency_key"`
}

type ListTasksFilters struct {
	OwnerId  *uuid.UUID `form:"owner_id"`
	AgencyId *uuid.UUID `form:"agency_id"`
	Status   string     `form:"status"`
	Type     string     `form:"type"`
	Limit    int        `form:"limit" binding:"omitempty,gte=1,lte=100"`
	After    string     `form:"after"`
}

type ReportProgressBody struct {
	Progress *float64 `json:"progress" binding:"required"`
}

type ReportSuccessBody struct {
	Result map[string]any `json:"result"`
}

type ReportFailureBody struct {
	ErrorMessage string         `json:"error_message" binding:"required"`
	ErrorDetail  map[string]any `json:"error_detail"`
}
