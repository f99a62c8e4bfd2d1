package auth

import (
	"context"
	"log/slog"
	"net/http"
)

// contextKey is an unexported type used for context keys in this package,
// so no other package can read or shadow the identity.
type contextKey string

const identityKey contextKey = "identity"

// unauthorizedBody is the fixed 401 response. Missing, expired and tampered
// tokens all get the same answer.
const unauthorizedBody = `{"error":"unauthorized","message":"unauthorized access"}`

// RequireAuth is a middleware that enforces a valid session on protected routes.
//
// It reads the JWT from the "token" cookie, validates it, and stores the
// caller's Identity in the request context. If the token is missing or
// invalid, it returns 401 Unauthorized and stops the request chain.
//
// It does not look at the role: admin-only checks belong to the handler.
func RequireAuth(tokens *TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := extractIdentity(r, tokens)
			if err != nil {
				logger.Debug("session rejected",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(unauthorizedBody + "\n"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the caller's identity from the request context.
//
// Returns (Identity{}, false) when the request did not pass RequireAuth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.Email != ""
}

// extractIdentity reads the session cookie and validates it.
func extractIdentity(r *http.Request, tokens *TokenService) (Identity, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Identity{}, err
	}

	return tokens.Validate(cookie.Value)
}
