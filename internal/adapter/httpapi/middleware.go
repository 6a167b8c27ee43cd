package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"github.com/DKSALL9/StayFlow/internal/platform/metrics"
	"github.com/DKSALL9/StayFlow/internal/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RequestLogger logs each request with its status and duration.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr))
		})
	}
}

// Latency records per-route request latency.
func Latency(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			if m != nil {
				m.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
			}
		})
	}
}

// Auth requires a valid bearer token issued by the session manager and an
// active session for the same user.
func Auth(sessions *session.Manager, m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeError(w, m, r.URL.Path, session.ErrNoSession)
				return
			}

			userID, err := sessions.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, m, r.URL.Path, session.ErrNoSession)
				return
			}

			current := sessions.CurrentUser()
			if current == nil || current.ID != userID {
				writeError(w, m, r.URL.Path, session.ErrNoSession)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
