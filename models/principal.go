package models

import (
	"github.com/google/uuid"
)

// Principal is an authenticated actor together with a snapshot of its grants.
// The snapshot is read in a single transaction, so one resolution call never
// mixes grants from two different moments.
type Principal struct {
	Id        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Disabled  bool

	// GlobalRole comes from grant rows without an agency. Only SUPER_ADMIN is
	// meaningful there.
	GlobalRole Role
	// Grants holds the direct per-agency grants.
	Grants map[uuid.UUID]Role
	// Workspaces holds the workspace memberships with the agency set each one
	// covered at snapshot time.
	Workspaces []WorkspaceMembership
}

// EffectiveRole resolves the principal's role for an agency. A direct grant
// always wins, even when it is lower than the workspace-implied viewer floor.
// With a nil agency it returns the global ceiling: SUPER_ADMIN if granted,
// else the highest direct grant held on any agency.
func (p Principal) EffectiveRole(agencyId *uuid.UUID) Role {
	if p.GlobalRole == SUPER_ADMIN {
		return SUPER_ADMIN
	}

	if agencyId == nil {
		ceiling := NO_ROLE
		for _, role := range p.Grants {
			ceiling = max(ceiling, role)
		}
		if ceiling == NO_ROLE && len(p.Workspaces) > 0 {
			ceiling = VIEWER
		}
		return ceiling
	}

	if role, ok := p.Grants[*agencyId]; ok {
		return role
	}
	for _, membership := range p.Workspaces {
		if membership.CoversAgency(*agencyId) {
			return VIEWER
		}
	}
	return NO_ROLE
}

type Identity struct {
	PrincipalId uuid.UUID
	Email       string
	FirstName   string
	LastName    string
}

type Credentials struct {
	ActorIdentity Identity // for the audit log
	Principal     Principal
}

func (p Principal) IntoCredentials() Credentials {
	return Credentials{
		ActorIdentity: Identity{
			PrincipalId: p.Id,
			Email:       p.Email,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
		},
		Principal: p,
	}
}
