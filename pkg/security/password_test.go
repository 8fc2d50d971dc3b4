package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.NoError(t, h.Compare(hash, "admin123"))
	assert.ErrorIs(t, h.Compare(hash, "admin124"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestBcryptHasherSaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("admin123")
	require.NoError(t, err)
	b, err := h.Hash("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasherRejectsShortPassword(t *testing.T) {
	_, err := NewBcryptHasher(0).Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
