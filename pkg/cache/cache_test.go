package cache

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBackends(t *testing.T) {
	ctx := context.Background()
	file, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		cache Cache
	}{
		{"file", file},
		{"memory", NewMemoryCache()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cache
			defer c.Close()

			if _, hit, err := c.Get(ctx, "layout:a"); hit || err != nil {
				t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
			}
			if err := c.Set(ctx, "layout:a", []byte(`{"width":800}`), time.Hour); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			data, hit, err := c.Get(ctx, "layout:a")
			if err != nil || !hit || !bytes.Equal(data, []byte(`{"width":800}`)) {
				t.Errorf("Get() = %q, %v, %v", data, hit, err)
			}
			if err := c.Delete(ctx, "layout:a"); err != nil {
				t.Errorf("Delete() error = %v", err)
			}
			if _, hit, _ := c.Get(ctx, "layout:a"); hit {
				t.Error("entry survived Delete")
			}
			if err := c.Delete(ctx, "layout:a"); err != nil {
				t.Errorf("Delete() of missing key error = %v", err)
			}
		})
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if data, hit, err := c.Get(ctx, "k"); hit || data != nil || err != nil {
		t.Errorf("NullCache.Get() = %q, %v, %v", data, hit, err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("x"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("y"), 0)
	now = now.Add(2 * time.Minute)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl expired")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestFileCacheExpiredAndCorrupt(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_ = c.Set(ctx, "old", []byte("x"), time.Nanosecond)
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired file entry returned")
	}

	_ = c.Set(ctx, "k", []byte("x"), 0)
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if h != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
	if len(h) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tests := []struct {
		name string
		a, b string
	}{
		{"series", k.LayoutKey("d", LayoutKeyOpts{Series: "s1"}), k.LayoutKey("d", LayoutKeyOpts{Series: "s2"})},
		{"target", k.LayoutKey("d", LayoutKeyOpts{Series: "s", Action: "rootToNode", Target: "a"}), k.LayoutKey("d", LayoutKeyOpts{Series: "s", Action: "rootToNode", Target: "b"})},
		{"data", k.LayoutKey("d1", LayoutKeyOpts{}), k.LayoutKey("d2", LayoutKeyOpts{})},
		{"format", k.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"}), k.ArtifactKey("l", ArtifactKeyOpts{Format: "png"})},
		{"scale", k.ArtifactKey("l", ArtifactKeyOpts{Format: "png", Scale: 1}), k.ArtifactKey("l", ArtifactKeyOpts{Format: "png", Scale: 2})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("keys collide: %s", tt.a)
			}
		})
	}

	if got := k.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"}); !strings.HasPrefix(got, "artifact:svg:") {
		t.Errorf("ArtifactKey() = %s", got)
	}
	if k.LayoutKey("d", LayoutKeyOpts{Series: "s"}) != k.LayoutKey("d", LayoutKeyOpts{Series: "s"}) {
		t.Error("LayoutKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(nil, "team:")

	want := "team:" + inner.LayoutKey("d", LayoutKeyOpts{Series: "s"})
	if got := scoped.LayoutKey("d", LayoutKeyOpts{Series: "s"}); got != want {
		t.Errorf("LayoutKey() = %s, want %s", got, want)
	}
	if got := scoped.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"}); !strings.HasPrefix(got, "team:artifact:svg:") {
		t.Errorf("ArtifactKey() = %s", got)
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, errBoom, 1, errBoom},
		{"recovers", 2, Retryable(ErrUnavailable), 3, nil},
		{"exhausted", 5, Retryable(ErrUnavailable), 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) && !(err == nil && tt.wantErr == nil) {
				t.Errorf("Retry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := Retry(cctx, 3, time.Hour, func() error { return Retryable(ErrUnavailable) }); err != context.Canceled {
		t.Errorf("Retry() with cancelled context = %v", err)
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}

func TestRedisUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	if err == nil {
		t.Skip("something is listening on 127.0.0.1:1")
	}
	if !errors.Is(err, ErrUnavailable) || !IsRetryable(err) {
		t.Errorf("NewRedisCache() error = %v, want retryable ErrUnavailable", err)
	}
}
