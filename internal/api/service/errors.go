package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers any malformed or missing input. Wrap it with
	// the field detail: fmt.Errorf("%w: email is required", ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so the response can't be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoRefreshToken means the refresh cookie was absent from the request.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrInvalidRefresh means the refresh token failed verification.
	ErrInvalidRefresh = errors.New("invalid refresh token")

	// ErrServerConfig means the signing key material was never loaded. The
	// server stays up, but nothing auth-related can succeed.
	ErrServerConfig = errors.New("server signing keys not configured")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
