package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"zeecrown-admin/pkg/logger"

	"github.com/google/uuid"
)

type requestMetaKey struct{}

// requestMeta lets inner middleware report details back to RequestLogger.
type requestMeta struct {
	mu     sync.Mutex
	userID string
}

func setRequestUser(ctx context.Context, userID string) {
	if meta, ok := ctx.Value(requestMetaKey{}).(*requestMeta); ok {
		meta.mu.Lock()
		meta.userID = userID
		meta.mu.Unlock()
	}
}

// RequestLogger logs all HTTP requests with timing and status
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()[:8]
		}

		reqLogger := logger.WithRequestID(requestID)
		meta := &requestMeta{}

		ctx := logger.NewContext(r.Context(), &reqLogger)
		ctx = context.WithValue(ctx, requestMetaKey{}, meta)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		meta.mu.Lock()
		userID := meta.userID
		meta.mu.Unlock()

		logEvent := reqLogger.Info()
		if wrapped.statusCode >= 500 {
			logEvent = reqLogger.Error()
		} else if wrapped.statusCode >= 400 {
			logEvent = reqLogger.Warn()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", wrapped.statusCode).
			Dur("duration_ms", duration).
			Str("ip", remoteHost(r)).
			Str("forwarded_for", r.Header.Get("X-Forwarded-For")).
			Str("origin", r.Header.Get("Origin")).
			Str("user_agent", r.UserAgent()).
			Str("user_id", userID).
			Msg("HTTP")
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
