package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/middleware"
)

type resolver map[string]string

func (r resolver) ResolveIdentity(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingCredential
	}
	id, ok := r[header]
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return id, nil
}

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	var seen string
	h := middleware.Authenticate(resolver{"Bearer good": "user-1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = middleware.IdentityFromCtx(r.Context())
	}))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)

	rec := serve(h, "Bearer bad")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), middleware.MsgInvalidToken)

	assert.Equal(t, http.StatusOK, serve(h, "Bearer good").Code)
	assert.Equal(t, "user-1", seen)
}

func TestMemoryLimiterWindow(t *testing.T) {
	l := middleware.NewMemoryLimiter(2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "windows are per client")
}

func TestRateLimitMiddleware(t *testing.T) {
	h := middleware.RateLimit(middleware.NewMemoryLimiter(1, time.Minute))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	assert.Equal(t, http.StatusOK, serve(h, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "").Code)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) { return false, errors.New("down") }
func (brokenLimiter) Driver() string                              { return "broken" }

func TestRateLimitFailsOpen(t *testing.T) {
	h := middleware.RateLimit(brokenLimiter{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	assert.Equal(t, http.StatusOK, serve(h, "").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.ClientIP(req))

	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	assert.Equal(t, "1.2.3.4", middleware.ClientIP(req))
}

func TestRecovery(t *testing.T) {
	h := middleware.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := serve(h, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestCORSPreflight(t *testing.T) {
	h := middleware.CORS(middleware.DefaultCORSOptions())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("preflight must not reach the handler")
	}))
	req := httptest.NewRequest(http.MethodOptions, "/lots", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRedisLimiterReportsUnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()

	l := middleware.NewRedisLimiter(rdb, 10, time.Minute)
	assert.Equal(t, "redis", l.Driver())
	_, err := l.Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}
