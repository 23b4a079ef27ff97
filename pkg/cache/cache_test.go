package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := c.Set(ctx, "goproxy:github.com/kojioka/kojioka-go", []byte("v1.2.0"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, hit, err := c.Get(ctx, "goproxy:github.com/kojioka/kojioka-go")
	if err != nil || !hit {
		t.Fatalf("Get() = %v, %v; want hit", hit, err)
	}
	if string(data) != "v1.2.0" {
		t.Errorf("Get() data = %q, want %q", data, "v1.2.0")
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	_, hit, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("Get() returned hit for missing key")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Fatal("Get() should hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("Get() after expiry = %v, %v; want miss, nil", hit, err)
	}
}

func TestFileCacheZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	_ = c.Set(ctx, "key", []byte("value"), 0)
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("zero TTL entry should be a hit")
	}
}

func TestFileCacheDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() of missing key should not error: %v", err)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("entry should be gone after Clear()")
	}
}

func TestScopedCache(t *testing.T) {
	ctx := context.Background()
	base, _ := NewFileCache(t.TempDir())

	npm := Scoped(base, "npm:")
	goproxy := Scoped(base, "goproxy:")

	_ = npm.Set(ctx, "kojioka", []byte("npm-data"), 0)
	_ = goproxy.Set(ctx, "kojioka", []byte("goproxy-data"), 0)

	data, hit, _ := npm.Get(ctx, "kojioka")
	if !hit || string(data) != "npm-data" {
		t.Errorf("npm.Get() = %q, %v", data, hit)
	}
	data, hit, _ = goproxy.Get(ctx, "kojioka")
	if !hit || string(data) != "goproxy-data" {
		t.Errorf("goproxy.Get() = %q, %v", data, hit)
	}

	data, hit, _ = base.Get(ctx, "npm:kojioka")
	if !hit || string(data) != "npm-data" {
		t.Error("scoped key should be stored with prefix in the base cache")
	}
}

func TestScopedCacheChained(t *testing.T) {
	s := Scoped(Scoped(NewNullCache(), "update:"), "npm:")
	sc, ok := s.(*ScopedCache)
	if !ok {
		t.Fatalf("Scoped() returned %T", s)
	}
	if sc.Prefix() != "update:npm:" {
		t.Errorf("Prefix() = %q, want %q", sc.Prefix(), "update:npm:")
	}
}

func TestScopedCacheNilInner(t *testing.T) {
	s := Scoped(nil, "x:")
	if _, hit, err := s.Get(context.Background(), "k"); hit || err != nil {
		t.Errorf("Get() on nil-backed scope = %v, %v", hit, err)
	}
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	c, err := NewRedisCache(ctx, "redis://"+srv.Addr())
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v; want miss, nil", hit, err)
	}

	if err := c.Set(ctx, "npm:kojioka", []byte("1.2.0"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "npm:kojioka")
	if err != nil || !hit || string(data) != "1.2.0" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}

	srv.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "npm:kojioka"); hit {
		t.Error("entry should expire after its TTL")
	}

	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should be gone after Delete()")
	}
}

func TestRedisCacheClearPrefix(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	c, err := NewRedisCache(ctx, "redis://"+srv.Addr())
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	scoped := Scoped(c, "kojioka:")
	_ = scoped.Set(ctx, "npm:kojioka", []byte("1"), 0)
	_ = scoped.Set(ctx, "goproxy:github.com/kojioka/kojioka-go", []byte("2"), 0)
	_ = c.Set(ctx, "other:key", []byte("3"), 0)

	n, err := c.ClearPrefix(ctx, "kojioka:")
	if err != nil {
		t.Fatalf("ClearPrefix() error: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearPrefix() = %d, want 2", n)
	}
	if _, hit, _ := c.Get(ctx, "other:key"); !hit {
		t.Error("keys outside the prefix must survive")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisCache() should reject an invalid URL")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
