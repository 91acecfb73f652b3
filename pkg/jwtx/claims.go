package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs for the cookie pair. Short access tokens limit the
// damage of a stolen cookie; the refresh token trades that off for not
// making people log in every day.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims is the payload embedded in both the access and refresh token.
// It carries the public subset of a user record. The password hash must
// never end up in here; the service layer strips it before signing.
type Claims struct {
	jwt.RegisteredClaims

	// FirstName for the authenticated user
	FirstName string `json:"first_name,omitempty"`

	// LastName for the authenticated user
	LastName string `json:"last_name,omitempty"`

	// Email the user authenticated with
	Email string `json:"email,omitempty"`
}

// NewUserClaims builds minimally-correct claims for a user. Subject is the
// user id; iat/nbf/exp are derived from now and ttl.
func NewUserClaims(
	subject, firstName, lastName, email string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
}

// WithTTL returns a copy of the claims re-stamped at now with a fresh jti
// and the given lifetime. Used by refresh to mint a new access token from
// a verified refresh payload.
func (c Claims) WithTTL(ttl time.Duration, now time.Time) Claims {
	c.IssuedAt = jwt.NewNumericDate(now)
	c.NotBefore = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	c.ID = NewJTI()
	return c
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't being
// used before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
