package vault

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisVault(t *testing.T, installID string, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(client, installID, ttl), mr
}

func TestRedisRoundTrip(t *testing.T) {
	v, _ := newRedisVault(t, "install-1", 0)
	ctx := context.Background()

	token, err := v.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if token != "" {
		t.Fatalf("missing key must read as empty, got %q", token)
	}

	if err := v.Save(ctx, "refresh-1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	token, err = v.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if token != "refresh-1" {
		t.Fatalf("expected refresh-1, got %q", token)
	}

	if err := v.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	token, _ = v.Load(ctx)
	if token != "" {
		t.Fatalf("cleared vault must be empty, got %q", token)
	}
}

func TestRedisKeyScopedByInstallation(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	first := NewRedis(client, "install-1", 0)
	second := NewRedis(client, "install-2", 0)

	if err := first.Save(ctx, "refresh-a"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := second.Save(ctx, "refresh-b"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	token, _ := first.Load(ctx)
	if token != "refresh-a" {
		t.Fatalf("installations must not share tokens, got %q", token)
	}
}

func TestRedisTTLExpiresToken(t *testing.T) {
	v, mr := newRedisVault(t, "install-1", time.Minute)
	ctx := context.Background()

	if err := v.Save(ctx, "refresh-1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	token, err := v.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if token != "" {
		t.Fatalf("expired token must read as empty, got %q", token)
	}
}

func TestRedisUnavailable(t *testing.T) {
	v, mr := newRedisVault(t, "install-1", 0)
	mr.Close()

	ctx := context.Background()
	if err := v.Save(ctx, "refresh-1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := v.Load(ctx); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if err := v.Clear(ctx); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
