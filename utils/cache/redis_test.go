package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

// These tests need a live Redis. Set TEST_REDIS_URL to run them, e.g.
// TEST_REDIS_URL=redis://localhost:6379/1 go test ./utils/cache/
func testCache(t *testing.T) *RedisCache {
	t.Helper()

	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set, skipping Redis integration test")
	}

	c, err := NewRedisCache(redisURL)
	if err != nil {
		t.Fatalf("connect to redis: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c
}

func TestSetGetDelete(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	key := fmt.Sprintf("test:setget:%d", time.Now().UnixNano())

	if err := c.Set(ctx, key, "value", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != "value" {
		t.Errorf("got %q, want value", val)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := c.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSlidingWindowCount(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	key := fmt.Sprintf("test:window:%d", time.Now().UnixNano())
	defer c.Delete(ctx, key)

	for i := int64(1); i <= 3; i++ {
		count, err := c.SlidingWindowCount(ctx, key, time.Minute)
		if err != nil {
			t.Fatalf("hit %d: %v", i, err)
		}
		if count != i {
			t.Errorf("hit %d: count = %d, want %d", i, count, i)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestSlidingWindowExpiresOldHits(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	key := fmt.Sprintf("test:expiry:%d", time.Now().UnixNano())
	defer c.Delete(ctx, key)

	if _, err := c.SlidingWindowCount(ctx, key, 50*time.Millisecond); err != nil {
		t.Fatalf("first hit: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	count, err := c.SlidingWindowCount(ctx, key, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("second hit: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 after window elapsed", count)
	}
}
