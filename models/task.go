package models

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskSucceeded
	TaskFailed
	TaskCancelled
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskSucceeded:
		return "succeeded"
	case TaskFailed:
		return "failed"
	case TaskCancelled:
		return "cancelled"
	}
	return "pending"
}

func TaskStatusFromString(s string) TaskStatus {
	switch s {
	case "running":
		return TaskRunning
	case "succeeded":
		return TaskSucceeded
	case "failed":
		return TaskFailed
	case "cancelled":
		return TaskCancelled
	}
	return TaskPending
}

func (s TaskStatus) IsTerminal() bool {
	return s == TaskSucceeded || s == TaskFailed || s == TaskCancelled
}

// TaskType tags the unit of work a task carries. The set is closed but
// append-only: tags are never removed, historical records must remain
// decodable.
type TaskType string

const (
	TaskTypeImport        TaskType = "import"
	TaskTypeExport        TaskType = "export"
	TaskTypeDeleteFeed    TaskType = "delete_feed"
	TaskTypeMergeAgencies TaskType = "merge_agencies"
	TaskTypeSplitAgency   TaskType = "split_agency"
	TaskTypeDeleteAgency  TaskType = "delete_agency"
)

var KnownTaskTypes = []TaskType{
	TaskTypeImport,
	TaskTypeExport,
	TaskTypeDeleteFeed,
	TaskTypeMergeAgencies,
	TaskTypeSplitAgency,
	TaskTypeDeleteAgency,
}

func (t TaskType) IsValid() bool {
	return slices.Contains(KnownTaskTypes, t)
}

// MinRoleForTaskType returns the role required to enqueue a task of the given
// type on its owning agency. Destructive and structural operations require
// agency_admin, import/export require editor.
func MinRoleForTaskType(t TaskType) Role {
	switch t {
	case TaskTypeImport, TaskTypeExport:
		return EDITOR
	default:
		return AGENCY_ADMIN
	}
}

type Task struct {
	Id uuid.UUID
	// CorrelationId binds the record to the external worker pool's unit of
	// execution. Opaque to the registry.
	CorrelationId string
	Name          string
	Description   string
	Type          TaskType
	OwnerId       uuid.UUID
	OwnerName     string
	// AgencyId is absent for platform-level tasks.
	AgencyId     *uuid.UUID
	Status       TaskStatus
	Progress     float64
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ErrorMessage *string
	ErrorDetail  Document
	Input        Document
	Result       Document
	CreatedAt    time.Time
}

var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending: {TaskRunning, TaskCancelled},
	TaskRunning: {TaskRunning, TaskSucceeded, TaskFailed, TaskCancelled},
}

// ValidateTransition checks the state machine edge from the task's current
// status. Terminal states have no outgoing edges.
func (t Task) ValidateTransition(target TaskStatus) error {
	if slices.Contains(taskTransitions[t.Status], target) {
		return nil
	}
	return errors.Wrapf(ErrInvalidTransition, "cannot transition task %s from %s to %s",
		t.Id, t.Status, target)
}

// ValidateProgress checks a progress report: the task must be running and
// progress is monotone non-decreasing in [0, 100]. Equality is accepted, the
// queue may redeliver a progress callback.
func (t Task) ValidateProgress(progress float64) error {
	if t.Status != TaskRunning {
		return errors.Wrapf(ErrInvalidTransition, "cannot report progress on task %s in status %s",
			t.Id, t.Status)
	}
	if progress < 0 || progress > 100 {
		return errors.Wrapf(ErrInvalidProgress, "progress %.2f is out of [0, 100]", progress)
	}
	if progress < t.Progress {
		return errors.Wrapf(ErrInvalidProgress, "progress %.2f regressed below %.2f", progress, t.Progress)
	}
	return nil
}

type CreateTaskInput struct {
	Name        string
	Description string
	Type        TaskType
	OwnerId     uuid.UUID
	AgencyId    *uuid.UUID
	Input       Document
	// IdempotencyKey deduplicates enqueue requests under at-least-once
	// delivery: the same (owner, key) pair always maps to the same task.
	IdempotencyKey string
}

type UpdateTaskStatusInput struct {
	Id           uuid.UUID
	Status       TaskStatus
	Progress     *float64
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ErrorMessage *string
	ErrorDetail  Document
	Result       Document
	// ExpectedStatus guards the check-and-set: the update applies only if the
	// row still carries this status.
	ExpectedStatus TaskStatus
}

type ListTasksFilters struct {
	OwnerId  *uuid.UUID
	AgencyId *uuid.UUID
	Status   *TaskStatus
	Type     *TaskType
}
