package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/domain"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// MinPasswordLength is the shortest password Authenticate will even look at.
const MinPasswordLength = 8

// AuthService issues and refreshes the signed cookie pair. Signer or
// Verifier may be nil when the key PEMs were not provided at startup; every
// method fails with ErrServerConfig in that case rather than panicking.
type AuthService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Store    store.Store

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// Authenticate checks the credentials and, if they hold, returns the user
// and a freshly signed access/refresh pair.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, domain.TokenPair{}, validationErr("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, domain.TokenPair{}, validationErr("email is not a valid address")
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, domain.TokenPair{}, validationErr("password must be at least %d characters", MinPasswordLength)
	}

	if s.Signer == nil {
		l.Error("authenticate called without a configured signer")
		return domain.User{}, domain.TokenPair{}, ErrServerConfig
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("authentication failed", slog.String("email", email))
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user, time.Now())
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	l.Info("user authenticated", slog.String("user_id", user.ID))
	return user, pair, nil
}

// Refresh verifies the refresh token and mints a new access token carrying
// the same identity claims. The refresh token itself is not rotated; it
// stays valid until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}
	if s.Verifier == nil || s.Signer == nil {
		slogx.FromContext(ctx).Error("refresh called without configured keys")
		return "", ErrServerConfig
	}

	claims, err := s.Verifier.Verify(refreshToken)
	if err != nil {
		return "", errors.Join(ErrInvalidRefresh, err)
	}

	access, err := s.Signer.Sign(claims.WithTTL(s.accessTTL(), time.Now()))
	if err != nil {
		return "", err
	}
	return access, nil
}

// issuePair signs the access and refresh tokens for a user. The claims
// carry only the public subset of the record; the hash never leaves here.
func (s *AuthService) issuePair(user domain.User, now time.Time) (domain.TokenPair, error) {
	claims := jwtx.NewUserClaims(user.ID, user.FirstName, user.LastName, user.Email, s.accessTTL(), s.Issuer, now)

	access, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Signer.Sign(claims.WithTTL(s.refreshTTL(), now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
