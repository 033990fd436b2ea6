package redis

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, ok, err := cache.Get(ctx, "foo")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}

	if string(val) != "bar" {
		t.Fatalf("expected bar, got %s", val)
	}

	if !mr.Exists(cache.prefix + "foo") {
		t.Fatalf("expected key to be stored under prefix")
	}
}

func TestCacheGetMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	val, ok, err := NewCache(client).Get(context.Background(), "missing")
	if err != nil || ok || val != nil {
		t.Fatalf("expected clean miss, got val=%v ok=%v err=%v", val, ok, err)
	}
}

func TestCacheExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, ok, _ := cache.Get(ctx, "short"); ok {
		t.Fatalf("expected key to expire")
	}
}

func TestCacheSetNX(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	set, err := cache.SetNX(ctx, "key", []byte("first"), time.Minute)
	if err != nil || !set {
		t.Fatalf("expected first SetNX to succeed, got set=%v err=%v", set, err)
	}

	set, err = cache.SetNX(ctx, "key", []byte("second"), time.Minute)
	if err != nil {
		t.Fatalf("SetNX failed: %v", err)
	}
	if set {
		t.Fatalf("expected second SetNX to fail because key exists")
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	for _, key := range []string{"a", "b"} {
		if err := cache.Set(ctx, key, []byte("x"), time.Minute); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}

	if err := cache.Delete(ctx, "a", "b", "never-set"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, ok, _ := cache.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be deleted")
	}
	if _, ok, _ := cache.Get(ctx, "b"); ok {
		t.Fatalf("expected b to be deleted")
	}
	if err := cache.Delete(ctx); err != nil {
		t.Fatalf("empty delete failed: %v", err)
	}
}

func TestCacheReportsConnectionErrors(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()
	mr.Close()

	if _, _, err := NewCache(client).Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
