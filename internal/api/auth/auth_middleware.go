package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fmcarvalho/linkmark/app/observability/metrics"
	"github.com/fmcarvalho/linkmark/internal/api"
)

// Typed context keys for values set by the guard.
type contextKey string

const UserIDKey contextKey = "userID"
const UserEmailKey contextKey = "userEmail"

// Authenticate is the identity guard: it validates the bearer token on every
// protected request and attaches the subject's id and email to the request
// context. A request that fails here never reaches the handler.
func Authenticate(issuer *TokenIssuer, m *metrics.AppMetrics, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			reject := func(message string) {
				if m != nil {
					m.AuthFailuresTotal.Add(ctx, 1)
				}
				api.ErrorResponse(w, r, http.StatusUnauthorized, message)
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				reject("Authorization header required")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				reject("Authorization header format must be Bearer {token}")
				return
			}

			claims, err := issuer.Verify(headerParts[1])
			if err != nil {
				l.WarnContext(ctx, "Token verification failed", slog.Any("error", err))
				reject("Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated user's id set by Authenticate.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUserEmailFromContext returns the authenticated user's email set by Authenticate.
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
