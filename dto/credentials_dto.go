package dto

import (
	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
)

type Identity struct {
	PrincipalId uuid.UUID `json:"principal_id"`
	Email       string    `json:"email,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
}

type Credentials struct {
	ActorIdentity Identity          `json:"actor_identity"`
	GlobalRole    string            `json:"global_role"`
	Grants        map[string]string `json:"grants"`
}

func AdaptCredentialDto(creds models.Credentials) Credentials {
	grants := make(map[string]string, len(creds.Principal.Grants))
	for agencyId, role := range creds.Principal.Grants {
		grants[agencyId.String()] = role.String()
	}

	return Credentials{
		ActorIdentity: Identity{
			PrincipalId: creds.ActorIdentity.PrincipalId,
			Email:       creds.ActorIdentity.Email,
			FirstName:   creds.ActorIdentity.FirstName,
			LastName:    creds.ActorIdentity.LastName,
		},
		GlobalRole: creds.Principal.GlobalRole.String(),
		Grants:     grants,
	}
}
