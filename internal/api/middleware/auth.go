package middleware

import (
	"context"
	"net/http"

	"github.com/dkearns/tasktrack/internal/service"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// SessionCookie carries the opaque session token between requests.
const SessionCookie = "session_id"

// Auth resolves the session cookie and injects the owning user's ID into
// the request context. Every failure mode is a 401 before any handler runs.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			userID, err := authService.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}
