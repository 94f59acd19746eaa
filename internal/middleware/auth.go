// Package middleware provides HTTP middleware for authentication, CORS
// handling, rate limiting, and request context management.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/LuiFig19/TaskChrono-sub001/internal/logging"
	"github.com/LuiFig19/TaskChrono-sub001/internal/services"
)

type contextKey string

const (
	// ClaimsKey is the context key for storing JWT claims.
	ClaimsKey contextKey = "claims"
)

// AuthMiddleware validates JWT tokens and adds claims to the request context.
// Returns 401 for missing/invalid tokens. Besides the Authorization header it
// accepts an access_token query parameter, since EventSource cannot set
// headers.
func AuthMiddleware(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractToken(r)
			if err != "" {
				logging.LogSecurityEvent(r.Context(), logging.SecurityEventMissingAuth, err)
				http.Error(w, `{"error":"`+err+`"}`, http.StatusUnauthorized)
				return
			}

			claims, verr := authService.ValidateToken(token)
			if verr != nil {
				logging.LogSecurityEvent(r.Context(), logging.SecurityEventInvalidJWT, "invalid or expired token")
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the bearer token from the Authorization header or the
// access_token query parameter. Returns the token and an empty message, or
// an empty token and an error message.
func extractToken(r *http.Request) (token, errMsg string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if qt := r.URL.Query().Get("access_token"); qt != "" {
			return qt, ""
		}
		return "", "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "invalid authorization header format"
	}
	return parts[1], ""
}

// GetClaims retrieves the JWT claims from the request context.
// Returns nil if no claims are present (e.g., unauthenticated request).
func GetClaims(ctx context.Context) *services.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*services.Claims)
	return claims
}
