package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID         uuid.UUID `db:"id"`
	PropertyID uuid.UUID `db:"property_id"`
	UserID     uuid.UUID `db:"user_id"`
	Text       string    `db:"text"`
	Rating     int       `db:"rating"`
	CreatedAt  time.Time `db:"created_at"`

	// Joined from users on read paths.
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}
