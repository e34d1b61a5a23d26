package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
)

type AuditEntryFilters struct {
	AgencyId   *uuid.UUID `form:"agency_id"`
	ActorId    *uuid.UUID `form:"actor_id"`
	EntityType string     `form:"entity_type"`
	Action     string     `form:"action"`
	From       *time.Time `form:"from"`
	To         *time.Time `form:"to"`
	Limit      int        `form:"limit" binding:"omitempty,gte=1,lte=100"`
	After      string     `form:"after"`
}

type AuditEntry struct {
	Id          uuid.UUID      `json:"id"`
	ActorId     uuid.UUID      `json:"actor_id"`
	ActorName   string         `json:"actor_name,omitempty"`
	AgencyId    *uuid.UUID     `json:"agency_id,omitempty"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entity_type"`
	EntityId    string         `json:"entity_id"`
	Description *string        `json:"description,omitempty"`
	Before      map[string]any `json:"before,omitempty"`
	After       map[string]any `json:"after,omitempty"`
	Origin      *string        `json:"origin,omitempty"`
	UserAgent   *string        `json:"user_agent,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func AdaptAuditEntry(m models.AuditEntry) AuditEntry {
	return AuditEntry{
		Id:          m.Id,
		ActorId:     m.ActorId,
		ActorName:   m.ActorName,
		AgencyId:    m.AgencyId,
		Action:      string(m.Action),
		EntityType:  m.EntityType,
		EntityId:    m.EntityId,
		Description: m.Description,
		// Payloads were sanitized before being persisted.
		Before:    m.Before,
		After:     m.After,
		Origin:    m.Origin,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
	}
}

type AuditAggregate struct {
	ByAction     map[string]int `json:"by_action"`
	ByEntityType map[string]int `json:"by_entity_type"`
}

func AdaptAuditAggregate(m models.AuditAggregate) AuditAggregate {
	byAction := make(map[string]int, len(m.ByAction))
	for action, count := range m.ByAction {
		byAction[string(action)] = count
	}
	return AuditAggregate{
		ByAction:     byAction,
		ByEntityType: m.ByEntityType,
	}
}
