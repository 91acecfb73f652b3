package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/domain"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestKeys(t *testing.T) (jwtx.Signer, jwtx.Verifier) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	signer, err := jwtx.NewSignerRS256(privPEM)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierRS256(pubPEM, "tally-test")
	require.NoError(t, err)

	return signer, verifier
}

func seedUser(t *testing.T, s store.Store, email, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		FirstName:    "Bruce",
		LastName:     "Chen",
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), user))
	return user
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	signer, verifier := newTestKeys(t)
	svc := &AuthService{Signer: signer, Verifier: verifier, Store: s, Issuer: "tally-test"}

	user := seedUser(t, s, "bruce@example.com", "correct-horse")

	t.Run("valid credentials issue a pair", func(t *testing.T) {
		got, pair, err := svc.Authenticate(ctx, "bruce@example.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		claims, err := verifier.Verify(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
		require.Equal(t, user.Email, claims.Email)
		require.Equal(t, user.FirstName, claims.FirstName)

		refreshClaims, err := verifier.Verify(pair.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, refreshClaims.Subject)
		require.True(t, refreshClaims.ExpiresAt.After(claims.ExpiresAt.Time))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "bruce@example.com", "not-the-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "nobody@example.com", "correct-horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("malformed email", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "not-an-email", "correct-horse")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("short password", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "bruce@example.com", "short")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("nil signer fails closed", func(t *testing.T) {
		broken := &AuthService{Store: s, Issuer: "tally-test"}
		_, _, err := broken.Authenticate(ctx, "bruce@example.com", "correct-horse")
		require.ErrorIs(t, err, ErrServerConfig)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	signer, verifier := newTestKeys(t)
	svc := &AuthService{Signer: signer, Verifier: verifier, Store: s, Issuer: "tally-test"}

	user := seedUser(t, s, "ref@example.com", "correct-horse")
	_, pair, err := svc.Authenticate(ctx, "ref@example.com", "correct-horse")
	require.NoError(t, err)

	t.Run("valid refresh mints a new access token", func(t *testing.T) {
		access, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, access)

		claims, err := verifier.Verify(access)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
		require.Equal(t, user.Email, claims.Email)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "")
		require.ErrorIs(t, err, ErrNoRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		old := jwtx.NewUserClaims(user.ID, user.FirstName, user.LastName, user.Email,
			time.Minute, "tally-test", time.Now().Add(-time.Hour))
		expired, err := signer.Sign(old)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, expired)
		require.ErrorIs(t, err, ErrInvalidRefresh)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("nil verifier fails closed", func(t *testing.T) {
		broken := &AuthService{Signer: signer, Store: s}
		_, err := broken.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrServerConfig)
	})
}
