package mw

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/linkstash/linkstash/internal/logger"
	"github.com/linkstash/linkstash/internal/session"
)

type ctxKey int

const userIDKey ctxKey = 0

// Auth gates a route on a valid session cookie. The authenticated user
// ID is stored in the request context; handlers read it with UserID.
// Requests without a valid, unexpired session get a 401 and never reach
// the handler.
func Auth(sessions session.Store, cookieName string, loggerClient logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			userID, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				loggerClient.Debug("rejected request with invalid session",
					logger.String("path", r.URL.Path))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user ID placed by Auth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}
