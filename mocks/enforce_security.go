package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/opentransit/editor-backend/models"
)

type EnforceSecurity struct {
	mock.Mock
}

func (m *EnforceSecurity) Authorize(agencyId *uuid.UUID, minRole models.Role) error {
	args := m.Called(agencyId, minRole)
	return args.Error(0)
}

func (m *EnforceSecurity) CreateTask(input models.CreateTaskInput) error {
	args := m.Called(input)
	return args.Error(0)
}

func (m *EnforceSecurity) ReadTask(task models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *EnforceSecurity) CancelTask(task models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *EnforceSecurity) ListTasks(filters models.ListTasksFilters) error {
	args := m.Called(filters)
	return args.Error(0)
}

func (m *EnforceSecurity) ReadAuditEntries(filters models.AuditEntryFilters) error {
	args := m.Called(filters)
	return args.Error(0)
}
