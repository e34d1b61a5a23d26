package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/utils"
)

type DbPrincipal struct {
	Id        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Disabled  bool      `db:"disabled"`
	CreatedAt time.Time `db:"created_at"`
}

const TABLE_PRINCIPALS = "principals"

var SelectPrincipalColumns = utils.EscapedColumnList[DbPrincipal]()

func AdaptPrincipal(db DbPrincipal) (models.Principal, error) {
	return models.Principal{
		Id:        db.Id,
		Email:     db.Email,
		FirstName: db.FirstName,
		LastName:  db.LastName,
		Disabled:  db.Disabled,
	}, nil
}

// Role grants are stored as (principal, agency, role) tuples. A NULL agency
// holds an agency-independent grant (super_admin).
type DbRoleGrant struct {
	PrincipalId uuid.UUID  `db:"principal_id"`
	AgencyId    *uuid.UUID `db:"agency_id"`
	Role        string     `db:"role"`
}

const TABLE_ROLE_GRANTS = "role_grants"

var SelectRoleGrantColumns = utils.EscapedColumnList[DbRoleGrant]()

// One row per (workspace the principal belongs to, agency that workspace
// covers).
type DbWorkspaceAgency struct {
	WorkspaceId uuid.UUID `db:"workspace_id"`
	AgencyId    uuid.UUID `db:"agency_id"`
}

const (
	TABLE_WORKSPACES         = "workspaces"
	TABLE_WORKSPACE_MEMBERS  = "workspace_members"
	TABLE_WORKSPACE_AGENCIES = "workspace_agencies"
)
