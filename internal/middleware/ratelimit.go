// ratelimit.go implements per-IP fixed-window rate limiting for the login
// and registration endpoints. Counters live in Redis when it is configured
// so every replica shares them; otherwise they live in process memory.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
)

// Limiter counts a hit for key and reports whether it is still within the
// allowed budget for the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// --- In-memory limiter ---

// rateLimitEntry tracks request counts for a single key within a window.
type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter is a single-process Limiter. Stale entries are swept by a
// background goroutine that stops when the context passed to
// NewMemoryLimiter is cancelled.
type MemoryLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

// NewMemoryLimiter creates a limiter allowing max hits per window per key.
func NewMemoryLimiter(ctx context.Context, max int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		max:     max,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*rateLimitEntry),
	}
	go l.sweep(ctx)
	return l
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || now.Sub(entry.windowStart) >= l.window {
		l.entries[key] = &rateLimitEntry{count: 1, windowStart: now}
		return true, nil
	}
	entry.count++
	return entry.count <= l.max, nil
}

func (l *MemoryLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := l.now()
			l.mu.Lock()
			for key, entry := range l.entries {
				if now.Sub(entry.windowStart) > l.window*2 {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// --- Redis limiter ---

// RedisLimiter is a Limiter shared across replicas. Each window is a key
// incremented with INCR and given a TTL on first hit.
type RedisLimiter struct {
	rdb    *redis.Client
	prefix string
	max    int
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter creates a Redis-backed limiter. prefix namespaces the
// counters so several limits can share one Redis database.
func NewRedisLimiter(rdb *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: prefix, max: max, window: window, now: time.Now}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := l.prefix + ":" + key + ":" + strconv.FormatInt(bucket, 10)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("incrementing rate limit counter: %w", err)
	}
	return incr.Val() <= int64(l.max), nil
}

// --- Middleware ---

// RateLimit returns middleware that rejects requests with 429 once the
// client IP exceeds the limiter's budget. If the limiter itself fails the
// request is let through and the failure is logged.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				slog.Warn("rate limiter unavailable",
					slog.String("path", c.Path()),
					slog.Any("error", err),
				)
				return next(c)
			}
			if !ok {
				return apperror.NewTooManyRequests("too many attempts, please try again later")
			}
			return next(c)
		}
	}
}
