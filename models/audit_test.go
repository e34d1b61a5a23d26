package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditActionForTerminalStatus(t *testing.T) {
	assert.Equal(t, AuditTaskSucceeded, AuditActionForTerminalStatus(TaskSucceeded))
	assert.Equal(t, AuditTaskFailed, AuditActionForTerminalStatus(TaskFailed))
	assert.Equal(t, AuditTaskCancelled, AuditActionForTerminalStatus(TaskCancelled))
}
