package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
)

func TestMemoryLimiter_WindowResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(ctx, 2, time.Minute)
	l.now = func() time.Time { return now }

	for i, want := range []bool{true, true, false} {
		ok, _ := l.Allow(ctx, "1.2.3.4")
		if ok != want {
			t.Fatalf("hit %d: expected %v, got %v", i+1, want, ok)
		}
	}

	// Other keys have their own budget.
	if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
		t.Error("expected a fresh key to be allowed")
	}

	now = now.Add(time.Minute)
	if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
		t.Error("expected the budget to reset after the window")
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLimiter_CountsAcrossInstances(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 10, 0, time.UTC)

	a := NewRedisLimiter(rdb, "rl:login", 2, time.Minute)
	b := NewRedisLimiter(rdb, "rl:login", 2, time.Minute)
	a.now = func() time.Time { return now }
	b.now = func() time.Time { return now }

	if ok, err := a.Allow(ctx, "ip"); err != nil || !ok {
		t.Fatalf("first hit: ok=%v err=%v", ok, err)
	}
	if ok, _ := b.Allow(ctx, "ip"); !ok {
		t.Fatal("second hit should be allowed")
	}
	if ok, _ := a.Allow(ctx, "ip"); ok {
		t.Fatal("third hit should be rejected by the shared counter")
	}

	now = now.Add(time.Minute)
	if ok, _ := b.Allow(ctx, "ip"); !ok {
		t.Error("expected a new window to start from zero")
	}
}

func TestRedisLimiter_SetsTTL(t *testing.T) {
	mr, rdb := newTestRedis(t)
	l := NewRedisLimiter(rdb, "rl:register", 5, time.Minute)
	if _, err := l.Allow(context.Background(), "ip"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected one counter key, got %v", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected ttl within the window, got %s", ttl)
	}
}

type stubLimiter struct {
	ok  bool
	err error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.ok, s.err }

func runRateLimit(t *testing.T, l Limiter) (called bool, err error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	err = RateLimit(l)(func(echo.Context) error {
		called = true
		return nil
	})(c)
	return called, err
}

func TestRateLimit_Rejects(t *testing.T) {
	called, err := runRateLimit(t, stubLimiter{ok: false})
	if called {
		t.Error("handler must not run when limited")
	}
	if apperror.SafeCode(err) != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %v", err)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	called, err := runRateLimit(t, stubLimiter{err: errors.New("redis down")})
	if err != nil || !called {
		t.Errorf("expected pass-through on limiter failure, err=%v called=%v", err, called)
	}
}
