package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
//
// Accounts are optional: with authentication disabled every request shares
// the DefaultOwner preferences row and no User rows exist.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	// It is also the owner key of the user's preferences row.
	ID string

	// Email is the login name (unique).
	Email string `validate:"required,email"`

	// DisplayName is shown by the client.
	DisplayName string `validate:"required,max=100"`

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
