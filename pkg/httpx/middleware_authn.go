package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/voyago-labs/voyago/pkg/jwtx"
	"github.com/voyago-labs/voyago/pkg/slogx"
)

// AuthnMiddleware enforces a Bearer session token on the wrapped handler.
// A missing token is a 401; a present but unverifiable token is a 400 so
// clients can tell "log in" apart from "your token is broken".
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="missing bearer token"`)
				WriteJSON(w, http.StatusUnauthorized, map[string]any{
					"success": false,
					"error":   "missing_token",
					"message": "Access denied. No token provided.",
				})
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session token verify failed", "err", err)
				WriteJSON(w, http.StatusBadRequest, map[string]any{
					"success": false,
					"error":   "invalid_token",
					"message": "Invalid token.",
				})
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				WriteJSON(w, http.StatusBadRequest, map[string]any{
					"success": false,
					"error":   "invalid_token",
					"message": "Invalid token.",
				})
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
