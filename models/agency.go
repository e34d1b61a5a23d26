package models

import (
	"time"

	"github.com/google/uuid"
)

// Agency is the tenant boundary: authorization and audit scoping are
// per-agency.
type Agency struct {
	Id        uuid.UUID
	Name      string
	Timezone  string
	CreatedAt time.Time
}
