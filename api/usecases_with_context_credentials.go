package api

import (
	"context"

	"github.com/opentransit/editor-backend/usecases"
	"github.com/opentransit/editor-backend/utils"
)

func usecasesWithCreds(ctx context.Context, uc usecases.Usecases) *usecases.UsecasesWithCreds {
	creds := utils.CredentialsFromCtx(ctx)

	return &usecases.UsecasesWithCreds{
		Usecases:    uc,
		Credentials: creds,
	}
}
