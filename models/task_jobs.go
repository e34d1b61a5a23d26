package models

import (
	"github.com/google/uuid"
)

// dispatch a task to the external worker pool
type TaskDispatchArgs struct {
	TaskId        uuid.UUID  `json:"task_id"`
	CorrelationId string     `json:"correlation_id"`
	TaskType      TaskType   `json:"task_type"`
	AgencyId      *uuid.UUID `json:"agency_id,omitempty"`
}

func (TaskDispatchArgs) Kind() string { return "task_dispatch" }

// advisory cancellation notice: the worker may still complete after it is
// delivered
type TaskCancelNoticeArgs struct {
	CorrelationId string `json:"correlation_id"`
}

func (TaskCancelNoticeArgs) Kind() string { return "task_cancel_notice" }
