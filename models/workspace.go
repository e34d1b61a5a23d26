package models

import (
	"slices"

	"github.com/google/uuid"
)

// Workspace groups agencies and grants its members floor-level (viewer)
// visibility over all of them.
type Workspace struct {
	Id   uuid.UUID
	Name string
}

// WorkspaceMembership is a principal's membership snapshot: the workspace and
// the agencies it covered at resolution time.
type WorkspaceMembership struct {
	WorkspaceId uuid.UUID
	AgencyIds   []uuid.UUID
}

func (m WorkspaceMembership) CoversAgency(agencyId uuid.UUID) bool {
	return slices.Contains(m.AgencyIds, agencyId)
}
