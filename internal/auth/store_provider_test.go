package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alebati123/abshine-storefront/internal/docstore/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() (*StoreProvider, *mocks.MockDocStore) {
	store := mocks.NewMockDocStore()
	tokens := NewTokenService(testSecret, time.Hour)
	return NewStoreProvider(store, tokens), store
}

func TestStoreProvider_CreateAccount(t *testing.T) {
	provider, store := newTestProvider()

	identity, err := provider.CreateAccount(context.Background(), "ana@example.com", "secreto123")

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.NotEmpty(t, identity.Token)

	var record credentialRecord
	require.True(t, store.Doc(CredentialsCollection, "ana@example.com", &record))
	assert.Equal(t, "ana@example.com", record.Email)
	assert.NotEqual(t, "secreto123", record.PasswordHash)
	assert.True(t, CheckPassword("secreto123", record.PasswordHash))
}

func TestStoreProvider_CreateAccount_DuplicateEmail(t *testing.T) {
	provider, _ := newTestProvider()

	_, err := provider.CreateAccount(context.Background(), "ana@example.com", "secreto123")
	require.NoError(t, err)

	_, err = provider.CreateAccount(context.Background(), "ana@example.com", "otracosa1")
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
}

func TestStoreProvider_CreateAccount_WeakPassword(t *testing.T) {
	provider, store := newTestProvider()

	_, err := provider.CreateAccount(context.Background(), "ana@example.com", "123")

	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, store.SetCalls)
}

func TestStoreProvider_Authenticate(t *testing.T) {
	provider, _ := newTestProvider()
	_, err := provider.CreateAccount(context.Background(), "ana@example.com", "secreto123")
	require.NoError(t, err)

	identity, err := provider.Authenticate(context.Background(), "ana@example.com", "secreto123")

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.NotEmpty(t, identity.Token)
}

func TestStoreProvider_Authenticate_WrongPassword(t *testing.T) {
	provider, _ := newTestProvider()
	_, err := provider.CreateAccount(context.Background(), "ana@example.com", "secreto123")
	require.NoError(t, err)

	_, err = provider.Authenticate(context.Background(), "ana@example.com", "otracosa")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStoreProvider_Authenticate_UnknownEmail(t *testing.T) {
	provider, _ := newTestProvider()

	_, err := provider.Authenticate(context.Background(), "nadie@example.com", "secreto123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStoreProvider_Authenticate_StoreError(t *testing.T) {
	provider, store := newTestProvider()
	store.GetErr = assert.AnError

	_, err := provider.Authenticate(context.Background(), "ana@example.com", "secreto123")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStoreProvider_CurrentIdentity(t *testing.T) {
	provider, _ := newTestProvider()

	_, signed := provider.CurrentIdentity()
	assert.False(t, signed)

	_, err := provider.CreateAccount(context.Background(), "ana@example.com", "secreto123")
	require.NoError(t, err)

	identity, signed := provider.CurrentIdentity()
	assert.True(t, signed)
	assert.Equal(t, "ana@example.com", identity.Email)
}
