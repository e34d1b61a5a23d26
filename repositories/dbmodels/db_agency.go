package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/utils"
)

type DbAgency struct {
	Id        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Timezone  string    `db:"timezone"`
	CreatedAt time.Time `db:"created_at"`
}

const TABLE_AGENCIES = "agencies"

var SelectAgencyColumns = utils.EscapedColumnList[DbAgency]()

func AdaptAgency(db DbAgency) (models.Agency, error) {
	return models.Agency{
		Id:        db.Id,
		Name:      db.Name,
		Timezone:  db.Timezone,
		CreatedAt: db.CreatedAt,
	}, nil
}
