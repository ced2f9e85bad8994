package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m-goikhman/chicago-formula-web/internal/auth"
)

type contextKey string

const participantKey contextKey = "participant_code"

// ParticipantCode returns the authenticated participant code from the
// request context, if any.
func ParticipantCode(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(participantKey).(string)
	return code, ok
}

// Logger logs each request with method, path, status and duration.
func Logger(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		log.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// Auth validates the bearer token and injects the participant code into
// the request context. Requests without a valid token get 401.
func Auth(next http.Handler, authService *auth.Service, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			log.Warn("Missing or malformed authorization header", "path", r.URL.Path)
			http.Error(w, `{"error":"Invalid authorization header"}`, http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		code, err := authService.Validate(token)
		if err != nil {
			log.Warn("Invalid session token", "path", r.URL.Path, "error", err)
			http.Error(w, `{"error":"Invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), participantKey, code)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
