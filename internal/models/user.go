package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Password    string    `db:"password"`
	Role        UserRole  `db:"role"`
	Avatar      string    `db:"avatar"`
	PhoneNumber string    `db:"phone_number"`
	Gender      string    `db:"gender"`
	Address     string    `db:"address"`
	Bio         string    `db:"bio"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
