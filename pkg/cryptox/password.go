package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match its hash.
// Callers should not forward the underlying bcrypt error to clients.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword generates a bcrypt hash of the password. The cost is the
// library default; bcrypt embeds the cost and salt in the hash itself so
// old hashes keep verifying if we ever bump it.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
// Returns ErrPasswordMismatch on any failure, including a malformed hash,
// so callers can't tell the cases apart.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
