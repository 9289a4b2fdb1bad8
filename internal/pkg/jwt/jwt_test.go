package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateAccessToken(7, "desk", "LIBRARIAN", "secret", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.LibrarianID)
	assert.Equal(t, "desk", claims.Username)
	assert.Equal(t, "LIBRARIAN", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateAccessToken_Failures(t *testing.T) {
	token, _, err := GenerateAccessToken(7, "desk", "LIBRARIAN", "secret", 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateAccessToken("garbage", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	expired, _, err := GenerateAccessToken(7, "desk", "LIBRARIAN", "secret", -5)
	require.NoError(t, err)
	_, err = ValidateAccessToken(expired, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokensAreUnique(t *testing.T) {
	a, _, err := GenerateAccessToken(1, "desk", "LIBRARIAN", "secret", 15)
	require.NoError(t, err)
	b, _, err := GenerateAccessToken(1, "desk", "LIBRARIAN", "secret", 15)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
