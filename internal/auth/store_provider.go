package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alebati123/abshine-storefront/internal/docstore"
)

// CredentialsCollection is the document store collection holding bcrypt
// credential records keyed by email.
const CredentialsCollection = "credentials"

type credentialRecord struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// StoreProvider implements Provider on top of the document store, issuing
// signed identity tokens on success.
type StoreProvider struct {
	store  docstore.Store
	tokens *TokenService

	mu      sync.RWMutex
	current string // last issued token
}

// NewStoreProvider creates a StoreProvider.
func NewStoreProvider(store docstore.Store, tokens *TokenService) *StoreProvider {
	return &StoreProvider{store: store, tokens: tokens}
}

// CreateAccount registers a credential for email.
func (p *StoreProvider) CreateAccount(ctx context.Context, email, password string) (Identity, error) {
	var existing credentialRecord
	found, err := p.store.Get(ctx, CredentialsCollection, email, &existing)
	if err != nil {
		return Identity{}, fmt.Errorf("check credential: %w", err)
	}
	if found {
		return Identity{}, ErrEmailAlreadyInUse
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Identity{}, err
	}

	record := credentialRecord{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := p.store.Set(ctx, CredentialsCollection, email, record, false); err != nil {
		return Identity{}, fmt.Errorf("store credential: %w", err)
	}

	return p.issue(email)
}

// Authenticate verifies a credential.
func (p *StoreProvider) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	var record credentialRecord
	found, err := p.store.Get(ctx, CredentialsCollection, email, &record)
	if err != nil {
		return Identity{}, fmt.Errorf("read credential: %w", err)
	}
	if !found || !CheckPassword(password, record.PasswordHash) {
		return Identity{}, ErrInvalidCredentials
	}

	return p.issue(email)
}

// CurrentIdentity returns the identity behind the last issued token, if it
// is still valid.
func (p *StoreProvider) CurrentIdentity() (Identity, bool) {
	p.mu.RLock()
	token := p.current
	p.mu.RUnlock()

	if token == "" {
		return Identity{}, false
	}
	email, err := p.tokens.Validate(token)
	if err != nil {
		return Identity{}, false
	}
	return Identity{Email: email, Token: token}, true
}

func (p *StoreProvider) issue(email string) (Identity, error) {
	token, err := p.tokens.Issue(email)
	if err != nil {
		return Identity{}, fmt.Errorf("issue token: %w", err)
	}

	p.mu.Lock()
	p.current = token
	p.mu.Unlock()

	return Identity{Email: email, Token: token}, nil
}
