package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tally/internal/api/service"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// Error codes returned by the API surface. The gate's own codes live in
// pkg/httpx next to the middleware that emits them.
const (
	codeValidation         = "VALIDATION_ERROR"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeNoRefreshToken     = "NO_REFRESH_TOKEN"
	codeInvalidRefresh     = "INVALID_REFRESH_TOKEN"
	codeNotFound           = "NOT_FOUND"
	codeAlreadyExists      = "ALREADY_EXISTS"
	codeInsufficientStock  = "INSUFFICIENT_STOCK"
	codeServerError        = "SERVER_ERROR"
)

// writeServiceError folds the service/store sentinel sets into the HTTP
// error surface. Unknown errors are logged and returned as an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, codeInvalidCredentials, "email or password is incorrect")
	case errors.Is(err, service.ErrNoRefreshToken):
		httpx.WriteError(w, http.StatusUnauthorized, codeNoRefreshToken, "refresh token missing")
	case errors.Is(err, service.ErrInvalidRefresh):
		httpx.WriteError(w, http.StatusUnauthorized, codeInvalidRefresh, "refresh token invalid or expired")
	case errors.Is(err, service.ErrServerConfig):
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeServerConfig, "server signing keys not configured")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, codeNotFound, "resource not found")
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, codeAlreadyExists, "resource already exists")
	case errors.Is(err, store.ErrInsufficientStock):
		httpx.WriteError(w, http.StatusConflict, codeInsufficientStock, "not enough stock to complete the sale")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, codeServerError, "internal server error")
	}
}
