package security

import (
	"github.com/cockroachdb/errors"

	"github.com/opentransit/editor-backend/models"
)

type EnforceSecurityTask interface {
	EnforceSecurity
	CreateTask(input models.CreateTaskInput) error
	ReadTask(task models.Task) error
	CancelTask(task models.Task) error
	ListTasks(filters models.ListTasksFilters) error
}

type EnforceSecurityTaskImpl struct {
	EnforceSecurity
	Credentials models.Credentials
}

func (e *EnforceSecurityTaskImpl) CreateTask(input models.CreateTaskInput) error {
	// Platform-wide tasks carry no agency and are reserved to super admins.
	if input.AgencyId == nil {
		return e.Authorize(nil, models.SUPER_ADMIN)
	}
	return e.Authorize(input.AgencyId, models.MinRoleForTaskType(input.Type))
}

func (e *EnforceSecurityTaskImpl) ReadTask(task models.Task) error {
	if task.OwnerId == e.Credentials.Principal.Id {
		// NO_ROLE still checks the principal is authenticated and enabled.
		return e.Authorize(nil, models.NO_ROLE)
	}
	if task.AgencyId == nil {
		return e.Authorize(nil, models.SUPER_ADMIN)
	}
	return e.Authorize(task.AgencyId, models.VIEWER)
}

func (e *EnforceSecurityTaskImpl) CancelTask(task models.Task) error {
	if task.OwnerId == e.Credentials.Principal.Id {
		return e.Authorize(nil, models.NO_ROLE)
	}
	if task.AgencyId == nil {
		return e.Authorize(nil, models.SUPER_ADMIN)
	}
	return e.Authorize(task.AgencyId, models.AGENCY_ADMIN)
}

func (e *EnforceSecurityTaskImpl) ListTasks(filters models.ListTasksFilters) error {
	if filters.AgencyId != nil {
		return e.Authorize(filters.AgencyId, models.VIEWER)
	}
	if filters.OwnerId != nil && *filters.OwnerId == e.Credentials.Principal.Id {
		return e.Authorize(nil, models.NO_ROLE)
	}
	if err := e.Authorize(nil, models.SUPER_ADMIN); err != nil {
		return errors.Wrap(err, "listing tasks across agencies is reserved to super admins")
	}
	return nil
}
