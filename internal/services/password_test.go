package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, checkPassword(hash, "secret1"))
	assert.ErrorIs(t, checkPassword(hash, "secret2"), bcrypt.ErrMismatchedHashAndPassword)
}
