package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeRedis implements RedisClient with function fields so each test can
// script exactly the behaviour it needs.
type fakeRedis struct {
	SetNXFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}

func (f *fakeRedis) Ping(ctx context.Context) error { return nil }
func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return f.SetNXFunc(ctx, key, value, expiration)
}
func (f *fakeRedis) Close() error { return nil }

func TestDedupeCacheMarkSeen(t *testing.T) {
	seen := make(map[string]bool)
	cli := &fakeRedis{
		SetNXFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
			if expiration != time.Hour {
				t.Errorf("ttl = %v, want 1h", expiration)
			}
			if seen[key] {
				return false, nil
			}
			seen[key] = true
			return true, nil
		},
	}
	cache := NewDedupeCache(cli, time.Hour)

	first, err := cache.MarkSeen(context.Background(), "ORD1", "success")
	if err != nil || !first {
		t.Fatalf("first MarkSeen = (%v, %v), want (true, nil)", first, err)
	}
	again, err := cache.MarkSeen(context.Background(), "ORD1", "success")
	if err != nil || again {
		t.Fatalf("repeat MarkSeen = (%v, %v), want (false, nil)", again, err)
	}

	// A different event type for the same order is a distinct delivery.
	other, err := cache.MarkSeen(context.Background(), "ORD1", "refunded")
	if err != nil || !other {
		t.Fatalf("other event MarkSeen = (%v, %v), want (true, nil)", other, err)
	}
}

func TestDedupeCacheKeyShape(t *testing.T) {
	var gotKey string
	cli := &fakeRedis{
		SetNXFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
			gotKey = key
			return true, nil
		},
	}
	cache := NewDedupeCache(cli, time.Hour)
	if _, err := cache.MarkSeen(context.Background(), "ORD2", "failed"); err != nil {
		t.Fatal(err)
	}
	if gotKey != "webhook:seen:ORD2:failed" {
		t.Errorf("key = %q", gotKey)
	}
}

func TestDedupeCachePropagatesError(t *testing.T) {
	wantErr := errors.New("connection refused")
	cli := &fakeRedis{
		SetNXFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
			return false, wantErr
		},
	}
	cache := NewDedupeCache(cli, time.Hour)
	if _, err := cache.MarkSeen(context.Background(), "ORD3", "success"); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestNewDedupeCacheDefaultTTL(t *testing.T) {
	cache := NewDedupeCache(&fakeRedis{}, 0)
	if cache.ttl != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h default", cache.ttl)
	}
}
