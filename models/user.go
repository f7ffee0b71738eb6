package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Users are created on registration and
// never mutated or deleted in-app.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
}
