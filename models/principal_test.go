package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalEffectiveRole(t *testing.T) {
	agencyA := uuid.MustParse("25ab6323-1657-4a52-923a-ef6983fe4532")
	agencyB := uuid.MustParse("5b33cde3-0b53-4e21-8d07-bf395f376a1c")
	workspaceId := uuid.MustParse("0ae6fda7-f7b3-4218-9fc3-4efa329432a7")

	t.Run("direct grant on the agency", func(t *testing.T) {
		p := Principal{Grants: map[uuid.UUID]Role{agencyA: EDITOR}}
		assert.Equal(t, EDITOR, p.EffectiveRole(&agencyA))
		assert.Equal(t, NO_ROLE, p.EffectiveRole(&agencyB))
	})

	t.Run("workspace membership implies the viewer floor", func(t *testing.T) {
		p := Principal{
			Workspaces: []WorkspaceMembership{
				{WorkspaceId: workspaceId, AgencyIds: []uuid.UUID{agencyA}},
			},
		}
		assert.Equal(t, VIEWER, p.EffectiveRole(&agencyA))
		assert.Equal(t, NO_ROLE, p.EffectiveRole(&agencyB))
	})

	t.Run("a direct grant wins over the workspace floor, even a lower one", func(t *testing.T) {
		p := Principal{
			Grants: map[uuid.UUID]Role{agencyA: VIEWER},
			Workspaces: []WorkspaceMembership{
				{WorkspaceId: workspaceId, AgencyIds: []uuid.UUID{agencyA, agencyB}},
			},
		}
		assert.Equal(t, VIEWER, p.EffectiveRole(&agencyA))
		// no direct grant on B, the floor applies there
		assert.Equal(t, VIEWER, p.EffectiveRole(&agencyB))
	})

	t.Run("super admin covers every agency", func(t *testing.T) {
		p := Principal{GlobalRole: SUPER_ADMIN}
		assert.Equal(t, SUPER_ADMIN, p.EffectiveRole(&agencyA))
		assert.Equal(t, SUPER_ADMIN, p.EffectiveRole(nil))
	})

	t.Run("nil agency returns the global ceiling", func(t *testing.T) {
		p := Principal{Grants: map[uuid.UUID]Role{
			agencyA: VIEWER,
			agencyB: AGENCY_ADMIN,
		}}
		assert.Equal(t, AGENCY_ADMIN, p.EffectiveRole(nil))
	})

	t.Run("workspace-only principals have a viewer ceiling", func(t *testing.T) {
		p := Principal{
			Workspaces: []WorkspaceMembership{
				{WorkspaceId: workspaceId, AgencyIds: []uuid.UUID{agencyA}},
			},
		}
		assert.Equal(t, VIEWER, p.EffectiveRole(nil))
	})

	t.Run("no grants at all", func(t *testing.T) {
		p := Principal{}
		assert.Equal(t, NO_ROLE, p.EffectiveRole(&agencyA))
		assert.Equal(t, NO_ROLE, p.EffectiveRole(nil))
	})
}

func TestRoleOrdering(t *testing.T) {
	assert.True(t, VIEWER < EDITOR)
	assert.True(t, EDITOR < AGENCY_ADMIN)
	assert.True(t, AGENCY_ADMIN < SUPER_ADMIN)
}
