package cryptox_test

import (
	"testing"

	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotContains(t, hash, "correct horse")

	require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong password", hash), cryptox.ErrPasswordMismatch)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	// A garbage hash must behave exactly like a wrong password
	err := cryptox.VerifyPassword("anything", "not-a-bcrypt-hash")
	require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := cryptox.HashPassword("same input")
	require.NoError(t, err)
	h2, err := cryptox.HashPassword("same input")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
