package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	Cost = bcrypt.MinCost
	t.Cleanup(func() { Cost = DefaultCost })

	hash, err := Hash("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, Verify("correct-horse", hash))
	assert.False(t, Verify("battery-staple", hash))
	assert.False(t, Verify("correct-horse", "not-a-hash"))
}

func TestHashRejectsShortPasswords(t *testing.T) {
	_, err := Hash("short")
	assert.ErrorIs(t, err, ErrTooShort)
	assert.False(t, ValidatePassword("1234567"))
	assert.True(t, ValidatePassword("12345678"))
}
