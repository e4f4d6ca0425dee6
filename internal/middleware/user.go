package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// UserIDHeader carries the authenticated user's ID, set by the gateway
	// after it validates the session. This service trusts it as-is.
	UserIDHeader = "X-User-ID"

	// UserIDContextKey is the context key for the user ID.
	UserIDContextKey contextKey = "user_id"
)

// WithUser extracts the user ID header into the request context. Requests
// without a valid UUID pass through; handlers that need a user reject them.
func WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(UserIDHeader); raw != "" {
			if userID, err := uuid.Parse(raw); err == nil {
				ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID retrieves the user ID from the context. The second return
// reports whether a user was present.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return id, ok
}
