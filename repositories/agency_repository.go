package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/repositories/dbmodels"
)

func (repo EditorDbRepository) GetAgencyById(ctx context.Context, exec Executor, agencyId uuid.UUID) (models.Agency, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAgencyColumns...).
		From(dbmodels.TABLE_AGENCIES).
		Where("id = ?", agencyId)

	return SqlToModel(ctx, exec, query, dbmodels.AdaptAgency)
}

func (repo EditorDbRepository) ListAgencies(ctx context.Context, exec Executor) ([]models.Agency, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAgencyColumns...).
		From(dbmodels.TABLE_AGENCIES).
		OrderBy("name")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAgency)
}
