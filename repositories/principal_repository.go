package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories/dbmodels"
)

// GetPrincipalById loads the principal together with its role grants and
// workspace memberships. It issues several statements, so run it inside a
// repeatable read transaction: under read committed each statement would take
// a fresh snapshot, and a concurrent grant change between the statements
// could assemble a principal state that never existed.
func (repo EditorDbRepository) GetPrincipalById(
	ctx context.Context,
	exec Executor,
	principalId uuid.UUID,
) (models.Principal, error) {
	principal, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectPrincipalColumns...).
			From(dbmodels.TABLE_PRINCIPALS).
			Where("id = ?", principalId),
		dbmodels.AdaptPrincipal,
	)
	if err != nil {
		return models.Principal{}, err
	}

	grants, err := SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRoleGrantColumns...).
			From(dbmodels.TABLE_ROLE_GRANTS).
			Where("principal_id = ?", principalId),
		func(db dbmodels.DbRoleGrant) (dbmodels.DbRoleGrant, error) { return db, nil },
	)
	if err != nil {
		return models.Principal{}, errors.Wrap(err, "could not load role grants")
	}

	principal.Grants = make(map[uuid.UUID]models.Role, len(grants))
	for _, grant := range grants {
		role := models.RoleFromString(grant.Role)
		if grant.AgencyId == nil {
			if role > principal.GlobalRole {
				principal.GlobalRole = role
			}
			continue
		}
		if role > principal.Grants[*grant.AgencyId] {
			principal.Grants[*grant.AgencyId] = role
		}
	}

	memberships, err := SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select("wm.workspace_id", "wa.agency_id").
			From(dbmodels.TABLE_WORKSPACE_MEMBERS+" wm").
			Join(dbmodels.TABLE_WORKSPACE_AGENCIES+" wa on wa.workspace_id = wm.workspace_id").
			Where("wm.principal_id = ?", principalId).
			OrderBy("wm.workspace_id"),
		func(db dbmodels.DbWorkspaceAgency) (dbmodels.DbWorkspaceAgency, error) { return db, nil },
	)
	if err != nil {
		return models.Principal{}, errors.Wrap(err, "could not load workspace memberships")
	}

	byWorkspace := make(map[uuid.UUID]int)
	for _, m := range memberships {
		idx, ok := byWorkspace[m.WorkspaceId]
		if !ok {
			principal.Workspaces = append(principal.Workspaces, models.WorkspaceMembership{
				WorkspaceId: m.WorkspaceId,
			})
			idx = len(principal.Workspaces) - 1
			byWorkspace[m.WorkspaceId] = idx
		}
		principal.Workspaces[idx].AgencyIds = append(principal.Workspaces[idx].AgencyIds, m.AgencyId)
	}

	return principal, nil
}
