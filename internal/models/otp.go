package models

import "time"

type OTP struct {
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	Attempts  int       `db:"attempts"`
	CreatedAt time.Time `db:"created_at"`
}
