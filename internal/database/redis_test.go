package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/config"
)

func TestNewRedis_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rdb.Close()

	if err := rdb.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("expected v, got %q", got)
	}
}

func TestNewRedis_BadURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), config.RedisConfig{URL: "://nope"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedis(context.Background(), config.RedisConfig{URL: "redis://" + addr}); err == nil {
		t.Fatal("expected ping error for closed server")
	}
}
