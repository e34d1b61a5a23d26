package security

import (
	"github.com/cockroachdb/errors"

	"github.com/opentransit/editor-backend/models"
)

type EnforceSecurityAudit interface {
	EnforceSecurity

	ReadAuditEntries(filters models.AuditEntryFilters) error
}

type EnforceSecurityAuditImpl struct {
	EnforceSecurity
	Credentials models.Credentials
}

func (e *EnforceSecurityAuditImpl) ReadAuditEntries(filters models.AuditEntryFilters) error {
	if filters.AgencyId != nil {
		return e.Authorize(filters.AgencyId, models.AGENCY_ADMIN)
	}
	if err := e.Authorize(nil, models.SUPER_ADMIN); err != nil {
		return errors.Wrap(err, "reading the audit trail across agencies is reserved to super admins")
	}
	return nil
}
