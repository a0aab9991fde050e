package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secreto123")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secreto123", hash)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("12345")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("secreto123", hash))
	assert.False(t, CheckPassword("otracosa", hash))
	assert.False(t, CheckPassword("secreto123", "not-a-hash"))
}
