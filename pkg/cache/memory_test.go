package cache

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type pos struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	}

	if err := mc.Set(ctx, "mars", pos{Lon: 123.45, Lat: -1.2}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got pos
	if err := mc.Get(ctx, "mars", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Lon != 123.45 || got.Lat != -1.2 {
		t.Fatalf("got %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var dest string
	err := mc.Get(context.Background(), "absent", &dest)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var dest string
	if err := mc.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", 1, time.Minute)
	time.Sleep(2 * time.Millisecond)
	_ = mc.Set(ctx, "b", 2, time.Minute)
	time.Sleep(2 * time.Millisecond)
	_ = mc.Set(ctx, "c", 3, time.Minute)

	ok, err := mc.Exists(ctx, "a")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("expected oldest key evicted")
	}
	if ok, _ := mc.Exists(ctx, "c"); !ok {
		t.Fatal("expected newest key present")
	}
}

func TestGenerateKeyWithParams(t *testing.T) {
	got := GenerateKeyWithParams("ephemeris", "Mars", "2020-01-01T00:00:00Z")
	want := "ephemeris:Mars:2020-01-01T00:00:00Z"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestMemoryCacheCloseStopsCleanup(t *testing.T) {
	before := runtime.NumGoroutine()

	caches := make([]*MemoryCache, 8)
	for i := range caches {
		caches[i] = NewMemoryCache(WithMemoryCleanup(10 * time.Millisecond))
	}
	for _, mc := range caches {
		if err := mc.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if err := mc.Close(); err != nil {
			t.Fatalf("second Close: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("cleanup goroutines leaked: %d running, %d before", runtime.NumGoroutine(), before)
}
