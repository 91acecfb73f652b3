package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// Error codes surfaced by the access gate. Clients key off
// CodeAccessTokenExpired to decide whether to attempt a refresh, so a
// missing cookie deliberately reports the same code as an expired token.
const (
	CodeAccessTokenExpired = "ACCESS_TOKEN_EXPIRED"
	CodeInvalidAccessToken = "INVALID_ACCESS_TOKEN"
	CodeServerConfig       = "SERVER_CONFIGURATION_ERROR"
)

// CookieAuthMiddleware gates every protected route behind the access-token
// cookie. No handler runs unless the gate explicitly admits the request.
//
// The verifier may be nil when the process started without a public key;
// in that case protected routes answer 500 while the rest of the server
// keeps working.
func CookieAuthMiddleware(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				WriteError(w, http.StatusUnauthorized, CodeAccessTokenExpired, "access token missing")
				return
			}

			if v == nil {
				log.Error("access gate has no verification key")
				WriteError(w, http.StatusInternalServerError, CodeServerConfig, "token verification unavailable")
				return
			}

			claims, err := v.Verify(cookie.Value)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					WriteError(w, http.StatusUnauthorized, CodeAccessTokenExpired, "access token expired")
					return
				}
				log.Warn("access token rejected", "err", err)
				WriteError(w, http.StatusForbidden, CodeInvalidAccessToken, "access token invalid")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
