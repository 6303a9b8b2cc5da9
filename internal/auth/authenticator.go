// Package auth provides optional accounts. With accounts enabled each user
// keeps their own preferences row, keyed by the user ID carried in the
// session token.
package auth

import (
	"context"

	"github.com/mmynk/creaturemap/internal/models"
)

// Authenticator registers and checks accounts.
type Authenticator interface {
	// Register creates an account. Fails with ErrEmailExists, ErrWeakPassword
	// or ErrInvalidUser.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account for email if credential matches, and
	// ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials too weak to register with.
	ValidateCredential(credential string) error
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
