package web

import (
	"context"
	"net/http"
	"strings"
)

type contextKey struct{}

var userIDKey contextKey

// TokenParser resolves a bearer token to the user id it identifies.
type TokenParser interface {
	Parse(token string) (int64, error)
}

// requireAuth extracts the Bearer token, resolves the caller's user id, and
// stores it in the request context. Requests without a valid token get 401.
func (h *Handlers) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Message: "missing bearer token",
				Status:  http.StatusUnauthorized,
				Error:   http.StatusText(http.StatusUnauthorized),
			})
			return
		}

		userID, err := h.tokens.Parse(token)
		if err != nil {
			h.writeError(w, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

// callerID returns the authenticated user id stored by requireAuth.
func callerID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}
