// Package middleware provides the HTTP middleware of the flowershop API.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/flowershop/pkg/logger"
	"github.com/shashiranjanraj/flowershop/pkg/metrics"
	"github.com/shashiranjanraj/flowershop/pkg/response"
)

var rateLimited = metrics.NewCounter("flowershop", "rate_limited_requests_total",
	"Requests rejected by the rate limiter.", []string{"driver"})

// Limiter decides whether one more request for key fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Driver() string
}

// RateLimit rejects clients that exceed the limiter's budget with a 429.
// Limiter errors let the request through.
func RateLimit(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), ClientIP(r))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rate limiter unavailable", "driver", l.Driver(), "error", err)
				ok = true
			}
			if !ok {
				rateLimited.WithLabelValues(l.Driver()).Inc()
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the first X-Forwarded-For hop, or the remote address
// without its port.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// ─── In-memory fixed window ───────────────────────────────────────────────────

// bucket tracks a fixed-window request count for one client.
type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps per-client windows in process memory.
type MemoryLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewMemoryLimiter allows max requests per client per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     max,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (m *MemoryLimiter) Driver() string { return "memory" }

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(m.window)}
		m.buckets[key] = b
	}
	b.count++
	return b.count <= m.max, nil
}

// Run evicts expired windows every interval until ctx is cancelled.
func (m *MemoryLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evict()
		}
	}
}

func (m *MemoryLimiter) evict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for key, b := range m.buckets {
		if now.After(b.resetAt) {
			delete(m.buckets, key)
		}
	}
}

// ─── Redis fixed window ───────────────────────────────────────────────────────

// RedisLimiter shares windows between instances through INCR + EXPIRE.
type RedisLimiter struct {
	rdb    redis.Cmdable
	max    int
	window time.Duration
	prefix string
}

// NewRedisLimiter allows max requests per client per window across every
// instance that shares rdb.
func NewRedisLimiter(rdb redis.Cmdable, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: max, window: window, prefix: "flowershop:ratelimit:"}
}

func (l *RedisLimiter) Driver() string { return "redis" }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", k, err)
	}
	// The first hit of a window starts its clock.
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit %s: %w", k, err)
		}
	}
	return n <= int64(l.max), nil
}
