package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// AuditAction tags an audit entry. Closed set, append-only.
type AuditAction string

const (
	AuditCreate      AuditAction = "create"
	AuditUpdate      AuditAction = "update"
	AuditDelete      AuditAction = "delete"
	AuditImport      AuditAction = "import"
	AuditExport      AuditAction = "export"
	AuditLogin       AuditAction = "login"
	AuditLogout      AuditAction = "logout"
	AuditAgencyMerge AuditAction = "agency_merge"
	AuditAgencySplit AuditAction = "agency_split"

	// task lifecycle edges
	AuditTaskSucceeded AuditAction = "task_succeeded"
	AuditTaskFailed    AuditAction = "task_failed"
	AuditTaskCancelled AuditAction = "task_cancelled"
)

var KnownAuditActions = []AuditAction{
	AuditCreate, AuditUpdate, AuditDelete,
	AuditImport, AuditExport,
	AuditLogin, AuditLogout,
	AuditAgencyMerge, AuditAgencySplit,
	AuditTaskSucceeded, AuditTaskFailed, AuditTaskCancelled,
}

func (a AuditAction) IsValid() bool {
	return slices.Contains(KnownAuditActions, a)
}

// AuditActionForTerminalStatus maps a terminal task status to the audit
// action recorded for the transition into it.
func AuditActionForTerminalStatus(status TaskStatus) AuditAction {
	switch status {
	case TaskFailed:
		return AuditTaskFailed
	case TaskCancelled:
		return AuditTaskCancelled
	default:
		return AuditTaskSucceeded
	}
}

// AuditEntry is immutable once written: the core exposes no update or delete
// operation on it.
type AuditEntry struct {
	Id          uuid.UUID
	ActorId     uuid.UUID
	ActorName   string
	AgencyId    *uuid.UUID
	Action      AuditAction
	EntityType  string
	EntityId    string
	Description *string
	Before      Document
	After       Document
	Origin      *string
	UserAgent   *string
	CreatedAt   time.Time
}

// AuditProvenance carries the request origin of the audited mutation.
type AuditProvenance struct {
	Origin    string
	UserAgent string
}

type CreateAuditEntryInput struct {
	ActorId     uuid.UUID
	AgencyId    *uuid.UUID
	Action      AuditAction
	EntityType  string
	EntityId    string
	Description *string
	Before      Document
	After       Document
	Provenance  *AuditProvenance
}

type AuditEntryFilters struct {
	AgencyId   *uuid.UUID
	EntityType string
	ActorId    *uuid.UUID
	Action     AuditAction
	From       time.Time
	To         time.Time
}

type AuditAggregate struct {
	ByAction     map[AuditAction]int
	ByEntityType map[string]int
}
