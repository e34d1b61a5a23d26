package security

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
)

type EnforceSecurity interface {
	Authorize(agencyId *uuid.UUID, minRole models.Role) error
}

type EnforceSecurityImpl struct {
	Credentials models.Credentials
}

// Authorize checks that the principal is authenticated, enabled, and resolves
// to at least minRole on the given agency (or globally, for a nil agency).
func (e *EnforceSecurityImpl) Authorize(agencyId *uuid.UUID, minRole models.Role) error {
	principal := e.Credentials.Principal
	if principal.Id == uuid.Nil {
		return errors.Wrap(models.UnAuthorizedError, "no credentials in context")
	}
	if principal.Disabled {
		return models.ErrDisabledPrincipal
	}

	effective := principal.EffectiveRole(agencyId)
	if effective < minRole {
		return errors.Wrap(
			models.ForbiddenError,
			fmt.Sprintf("effective role %s does not reach required role %s", effective, minRole),
		)
	}
	return nil
}
