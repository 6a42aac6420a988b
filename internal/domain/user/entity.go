package user

import (
	"time"

	"github.com/google/uuid"
)

// Account represents the auth table: login credentials only.
type Account struct {
	UserID       uuid.UUID `json:"userid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile represents the users table, one-to-one with Account.
type Profile struct {
	UserID      uuid.UUID `json:"userid"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneno"`
	CreatedAt   time.Time `json:"created_at"`
}
