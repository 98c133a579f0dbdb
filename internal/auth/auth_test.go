package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, h.Matches(hash, "password123"))
	assert.False(t, h.Matches(hash, "password124"))
	assert.False(t, h.Matches("not-a-hash", "password123"))
}

func TestPasswordHasher_LongPasswords(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 80)

	hash, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Matches(hash, long))
	assert.False(t, h.Matches(hash, strings.Repeat("a", 79)+"b"), "bytes past 72 still count")
}

func TestNewPasswordHasher_InvalidCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
}

func TestNewSessionToken(t *testing.T) {
	a := NewSessionToken(2)
	b := NewSessionToken(2)

	assert.True(t, strings.HasPrefix(a, "session_2_"))
	assert.NotEqual(t, a, b)
}
