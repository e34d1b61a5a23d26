package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTaskValidateTransition(t *testing.T) {
	taskIn := func(status TaskStatus) Task {
		return Task{Id: uuid.New(), Status: status}
	}

	t.Run("allowed edges", func(t *testing.T) {
		assert.NoError(t, taskIn(TaskPending).ValidateTransition(TaskRunning))
		assert.NoError(t, taskIn(TaskPending).ValidateTransition(TaskCancelled))
		assert.NoError(t, taskIn(TaskRunning).ValidateTransition(TaskSucceeded))
		assert.NoError(t, taskIn(TaskRunning).ValidateTransition(TaskFailed))
		assert.NoError(t, taskIn(TaskRunning).ValidateTransition(TaskCancelled))
	})

	t.Run("a pending task cannot complete without starting", func(t *testing.T) {
		assert.ErrorIs(t, taskIn(TaskPending).ValidateTransition(TaskSucceeded), ErrInvalidTransition)
		assert.ErrorIs(t, taskIn(TaskPending).ValidateTransition(TaskFailed), ErrInvalidTransition)
	})

	t.Run("terminal states have no outgoing edges", func(t *testing.T) {
		for _, terminal := range []TaskStatus{TaskSucceeded, TaskFailed, TaskCancelled} {
			for _, target := range []TaskStatus{TaskPending, TaskRunning, TaskSucceeded, TaskFailed, TaskCancelled} {
				assert.ErrorIs(t, taskIn(terminal).ValidateTransition(target), ErrInvalidTransition,
					"from %s to %s", terminal, target)
			}
		}
	})
}

func TestTaskValidateProgress(t *testing.T) {
	running := Task{Id: uuid.New(), Status: TaskRunning, Progress: 40}

	t.Run("monotone progress on a running task", func(t *testing.T) {
		assert.NoError(t, running.ValidateProgress(40), "a redelivered report carries the same value")
		assert.NoError(t, running.ValidateProgress(60))
		assert.NoError(t, running.ValidateProgress(100))
	})

	t.Run("progress cannot regress", func(t *testing.T) {
		assert.ErrorIs(t, running.ValidateProgress(30), ErrInvalidProgress)
	})

	t.Run("progress stays within [0, 100]", func(t *testing.T) {
		assert.ErrorIs(t, running.ValidateProgress(-1), ErrInvalidProgress)
		assert.ErrorIs(t, running.ValidateProgress(101), ErrInvalidProgress)
	})

	t.Run("only running tasks report progress", func(t *testing.T) {
		pending := Task{Id: uuid.New(), Status: TaskPending}
		assert.ErrorIs(t, pending.ValidateProgress(10), ErrInvalidTransition)
	})
}

func TestMinRoleForTaskType(t *testing.T) {
	assert.Equal(t, EDITOR, MinRoleForTaskType(TaskTypeImport))
	assert.Equal(t, EDITOR, MinRoleForTaskType(TaskTypeExport))
	assert.Equal(t, AGENCY_ADMIN, MinRoleForTaskType(TaskTypeDeleteFeed))
	assert.Equal(t, AGENCY_ADMIN, MinRoleForTaskType(TaskTypeMergeAgencies))
}
