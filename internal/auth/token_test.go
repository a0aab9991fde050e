package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue("ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc := NewTokenService(testSecret, -time.Minute)

	token, err := svc.Issue("ana@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	issuer := NewTokenService(testSecret, time.Hour)
	verifier := NewTokenService("a-completely-different-secret-key-here", time.Hour)

	token, err := issuer.Issue("ana@example.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
