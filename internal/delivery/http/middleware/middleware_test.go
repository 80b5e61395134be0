package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/logger"
	"zeecrown-admin/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/time/rate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testSecret = "middleware-test-secret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	utils.SetSecret(testSecret)
	token, err := utils.GenerateJWT("user-1", "a@zeecrown.test", role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		header func(t *testing.T) string
		want   int
	}{
		{"no token", func(*testing.T) string { return "" }, http.StatusUnauthorized},
		{"garbage token", func(*testing.T) string { return "Bearer nope" }, http.StatusUnauthorized},
		{"customer token", func(t *testing.T) string { return bearer(t, "customer") }, http.StatusForbidden},
		{"admin token", func(t *testing.T) string { return bearer(t, domain.RoleAdmin) }, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			utils.SetSecret(testSecret)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			rec := httptest.NewRecorder()

			RequireAdmin(okHandler()).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestAuthMiddlewareSetsUser(t *testing.T) {
	var got *domain.User
	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, domain.RoleAdmin))
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestAdminMiddlewareWithoutAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORS(t *testing.T) {
	h := NewCORSMiddleware("https://admin.zeecrown.test, http://localhost:3000")(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiterBlocksBurstAndStopsCleanly(t *testing.T) {
	rl := NewRateLimiter(context.Background(), rate.Limit(1), 2, 10*time.Millisecond, time.Hour)
	defer rl.Shutdown()
	h := rl.Middleware()(okHandler())

	codes := make([]int, 0, 3)
	var lastRetryAfter string
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		lastRetryAfter = rec.Header().Get("Retry-After")
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Equal(t, "1", lastRetryAfter)

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterEvictsStaleClients(t *testing.T) {
	rl := NewRateLimiter(context.Background(), rate.Limit(10), 10, 5*time.Millisecond, time.Millisecond)
	defer rl.Shutdown()

	rl.getVisitor("10.0.0.9")
	assert.Eventually(t, func() bool { return rl.size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(300*time.Millisecond))
	assert.Equal(t, 3, retryAfterSeconds(2100*time.Millisecond))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:41000"
	assert.Equal(t, "192.0.2.7", clientIP(req, true))

	req.Header.Set("X-Real-IP", "198.51.100.3")
	assert.Equal(t, "198.51.100.3", clientIP(req, true))
	assert.Equal(t, "192.0.2.7", clientIP(req, false))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req, true))
	assert.Equal(t, "192.0.2.7", clientIP(req, false))
}

func TestRateLimiterIgnoresForwardedForByDefault(t *testing.T) {
	rl := NewRateLimiter(context.Background(), rate.Limit(1), 2, 10*time.Millisecond, time.Hour)
	defer rl.Shutdown()
	h := rl.Middleware()(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimiterTrustedProxyKeysByForwardedFor(t *testing.T) {
	rl := NewRateLimiter(context.Background(), rate.Limit(1), 1, 10*time.Millisecond, time.Hour).TrustProxyHeaders(true)
	defer rl.Shutdown()
	h := rl.Middleware()(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d, 10.0.0.1", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestLoggerRecordsUserAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "info")
	defer logger.InitWithWriter(&bytes.Buffer{}, "info")

	h := RequestLogger(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.WithContext(r.Context()).Info().Msg("inside")
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, domain.RoleAdmin))
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"user_id":"user-1"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"message":"inside"`)
}
