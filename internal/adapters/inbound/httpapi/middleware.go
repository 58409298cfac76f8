package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/sufield/taskhub/internal/domain"
)

type contextKey string

const actingUserKey contextKey = "acting-user"

// RequireAuth resolves the bearer token to the acting user and stores
// it in the request context. Everything behind this middleware receives
// an authenticated user; rules still take it as an explicit argument.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authorization token required", nil)
			return
		}

		user, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		ctx := context.WithValue(r.Context(), actingUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actingUser returns the user placed in the context by RequireAuth.
// Handlers registered behind the middleware may assume it is present.
func actingUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(actingUserKey).(*domain.User)
	return user
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
