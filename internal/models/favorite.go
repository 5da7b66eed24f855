package models

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	UserID     uuid.UUID `db:"user_id"`
	PropertyID uuid.UUID `db:"property_id"`
	CreatedAt  time.Time `db:"created_at"`
}
