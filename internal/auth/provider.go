package auth

import (
	"context"
	"errors"
)

var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity is an authenticated principal as reported by the provider.
type Identity struct {
	Email string
	Token string
}

// Provider is the external authentication service the storefront delegates
// credential checks to.
type Provider interface {
	// CreateAccount registers a credential for email. Fails with
	// ErrEmailAlreadyInUse or ErrWeakPassword.
	CreateAccount(ctx context.Context, email, password string) (Identity, error)

	// Authenticate verifies a credential. Fails with ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (Identity, error)

	// CurrentIdentity returns the identity from the most recent successful
	// CreateAccount or Authenticate, if it is still valid.
	CurrentIdentity() (Identity, bool)
}
