package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/storebooks/internal/usecase"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newMiniredis(t)

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "report:t1:final-accounts:01", []byte(`{"balanced":true}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "report:t1:final-accounts:01")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"balanced":true}` {
		t.Fatalf("unexpected value %s", val)
	}

	requireStored(t, mr, "storebooks:cache:report:t1:final-accounts:01", `{"balanced":true}`)
}

func TestCacheMiss(t *testing.T) {
	client, _ := newMiniredis(t)

	_, err := NewCache(client).Get(context.Background(), "absent")
	if !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestCacheExpires(t *testing.T) {
	client, mr := newMiniredis(t)

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, _ := newMiniredis(t)

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected cache miss for deleted key, got %v", err)
	}
}
