package auth

import (
	"context"
	"net/http"
	"strings"
)

// operatorKey is a context key for the authenticated session claims.
type operatorKey struct{}

// ClaimsFromContext returns the session claims from the request
// context, or nil if the request is not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(operatorKey{}).(*Claims); ok {
		return claims
	}
	return nil
}

// Public paths that don't require a session.
var publicPaths = map[string]bool{
	"/api/v1/auth/session": true,
}

// AuthMiddleware validates session tokens on API routes. Paths outside
// /api/ (healthz, readyz, metrics, swagger) and public paths are
// skipped.
func AuthMiddleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := bearerToken(r)
			if tokenString == "" && r.URL.Path == "/api/v1/ws" {
				// Browser WebSocket clients cannot set request headers,
				// so the stream endpoint also accepts the token as a
				// query parameter.
				tokenString = r.URL.Query().Get("token")
			}
			if tokenString == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			claims, err := tokens.ValidateToken(tokenString)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired session token")
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the Bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
