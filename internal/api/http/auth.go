package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
)

// Cookie names for the signed token pair. Browsers send these back on every
// request; the access gate only ever reads AccessTokenCookie.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

type AuthenticateHandler struct {
	AuthService *service.AuthService
}

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP handles credential login.
//
//	@Summary		Authenticate with email and password
//	@Description	Verifies the credentials and sets the accessToken and refreshToken cookies.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	UserResponse			"Authenticated user"
//	@Failure		400	{object}	httpx.ErrorResponse		"Malformed email or password"
//	@Failure		401	{object}	httpx.ErrorResponse		"Unknown email or wrong password"
//	@Failure		500	{object}	httpx.ErrorResponse		"Signing keys not configured"
//	@Router			/api/authenticate [post].
func (h *AuthenticateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeValidation, "request body is not valid JSON")
		return
	}

	user, pair, err := h.AuthService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setTokenCookie(w, AccessTokenCookie, pair.AccessToken, h.accessTTL())
	setTokenCookie(w, RefreshTokenCookie, pair.RefreshToken, h.refreshTTL())

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

func (h *AuthenticateHandler) accessTTL() time.Duration {
	if h.AuthService.AccessTTL > 0 {
		return h.AuthService.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (h *AuthenticateHandler) refreshTTL() time.Duration {
	if h.AuthService.RefreshTTL > 0 {
		return h.AuthService.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

type RefreshHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP rotates the access cookie off a valid refresh cookie. The
// refresh cookie itself is left untouched; when it expires the client has
// to authenticate again.
//
//	@Summary		Refresh the access token
//	@Description	Verifies the refreshToken cookie and sets a new accessToken cookie.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	map[string]string	"message"
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing, invalid or expired refresh token"
//	@Failure		500	{object}	httpx.ErrorResponse	"Signing keys not configured"
//	@Router			/api/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	access, err := h.AuthService.Refresh(r.Context(), refreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ttl := jwtx.DefaultAccessTokenTTL
	if h.AuthService.AccessTTL > 0 {
		ttl = h.AuthService.AccessTTL
	}
	setTokenCookie(w, AccessTokenCookie, access, ttl)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "access token refreshed"})
}

// setTokenCookie writes an auth cookie. SameSite=None with Secure lets the
// browser send it on cross-origin XHR from the frontend's own domain.
func setTokenCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
