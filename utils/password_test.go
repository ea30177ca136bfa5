package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 5)
	assert.Equal(t, "pbkdf2", parts[0])
	assert.Equal(t, "sha256", parts[1])
	assert.True(t, IsHashedPassword(hash))

	assert.NoError(t, VerifyPassword(hash, "s3cret"))
	assert.ErrorIs(t, VerifyPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestHashPassword_UsesFreshSalt(t *testing.T) {
	first, err := HashPassword("same")
	require.NoError(t, err)
	second, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_LegacyPlaintext(t *testing.T) {
	assert.False(t, IsHashedPassword("hunter2"))
	assert.NoError(t, VerifyPassword("hunter2", "hunter2"))
	assert.ErrorIs(t, VerifyPassword("hunter2", "hunter3"), ErrInvalidCredentials)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.Error(t, VerifyPassword("pbkdf2$sha256$abc", "x"))
	assert.Error(t, VerifyPassword("pbkdf2$sha256$0$c2FsdA$a2V5", "x"))
}
