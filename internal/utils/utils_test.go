package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvitationToken(t *testing.T) {
	first, err := GenerateInvitationToken()
	require.NoError(t, err)
	second, err := GenerateInvitationToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

func TestGenerateSecureRandomStringRejectsNonPositive(t *testing.T) {
	_, err := GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTCarriesUserID(t *testing.T) {
	token, err := GenerateJWT(1234567890123, "secret", time.Minute, "test")
	require.NoError(t, err)

	userID, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890123), userID)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(1, "secret", -time.Minute, "test")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}
