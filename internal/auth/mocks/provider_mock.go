package mocks

import (
	"context"
	"sync"

	"github.com/alebati123/abshine-storefront/internal/auth"
)

// MockProvider is a mock implementation of auth.Provider for testing.
type MockProvider struct {
	mu sync.Mutex

	// Accounts maps email -> password for Authenticate checks.
	Accounts map[string]string

	// For tracking calls in tests
	CreateCalls       []CredentialCall
	AuthenticateCalls []CredentialCall

	// Errors returned by the corresponding operation when set
	CreateErr       error
	AuthenticateErr error

	current auth.Identity
	signed  bool
}

// CredentialCall records the parameters of a credential operation.
type CredentialCall struct {
	Email    string
	Password string
}

// NewMockProvider creates a MockProvider with no accounts.
func NewMockProvider() *MockProvider {
	return &MockProvider{Accounts: make(map[string]string)}
}

var _ auth.Provider = (*MockProvider)(nil)

// CreateAccount registers an account in memory.
func (m *MockProvider) CreateAccount(ctx context.Context, email, password string) (auth.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, CredentialCall{Email: email, Password: password})
	if m.CreateErr != nil {
		return auth.Identity{}, m.CreateErr
	}
	if _, exists := m.Accounts[email]; exists {
		return auth.Identity{}, auth.ErrEmailAlreadyInUse
	}
	if len(password) < 6 {
		return auth.Identity{}, auth.ErrWeakPassword
	}

	m.Accounts[email] = password
	m.current = auth.Identity{Email: email, Token: "mock-token-" + email}
	m.signed = true
	return m.current, nil
}

// Authenticate checks an in-memory account.
func (m *MockProvider) Authenticate(ctx context.Context, email, password string) (auth.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AuthenticateCalls = append(m.AuthenticateCalls, CredentialCall{Email: email, Password: password})
	if m.AuthenticateErr != nil {
		return auth.Identity{}, m.AuthenticateErr
	}
	if stored, ok := m.Accounts[email]; !ok || stored != password {
		return auth.Identity{}, auth.ErrInvalidCredentials
	}

	m.current = auth.Identity{Email: email, Token: "mock-token-" + email}
	m.signed = true
	return m.current, nil
}

// CurrentIdentity returns the last signed-in identity.
func (m *MockProvider) CurrentIdentity() (auth.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.signed
}

// CallCount returns the total number of network-shaped calls recorded.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CreateCalls) + len(m.AuthenticateCalls)
}

// Reset clears accounts and recorded calls.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Accounts = make(map[string]string)
	m.CreateCalls = nil
	m.AuthenticateCalls = nil
	m.CreateErr = nil
	m.AuthenticateErr = nil
	m.current = auth.Identity{}
	m.signed = false
}
