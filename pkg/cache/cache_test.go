package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFileCacheRoundtrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, "svg", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "svg")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v, want hit", ok, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get data = %q", data)
	}

	if err := c.Delete(ctx, "svg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "svg"); ok {
		t.Error("Get after Delete should miss")
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "svg"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "short"); err != nil || ok {
		t.Errorf("expired entry: ok=%v err=%v, want miss", ok, err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("null cache should never hit: ok=%v err=%v", ok, err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	d1 := k.DefinitionKey("revenue")
	d2 := k.DefinitionKey("revenue")
	if d1 != d2 {
		t.Error("DefinitionKey should be deterministic")
	}
	if d1 == k.DefinitionKey("other") {
		t.Error("different chart IDs should produce different keys")
	}

	r1 := k.RenderKey("abc", RenderKeyOpts{AxisID: "y", Format: "svg"})
	r2 := k.RenderKey("abc", RenderKeyOpts{AxisID: "y", Format: "png", Width: 800, Height: 600})
	if r1 == r2 {
		t.Error("different RenderKeyOpts should produce different keys")
	}
	if r1 != k.RenderKey("abc", RenderKeyOpts{AxisID: "y", Format: "svg"}) {
		t.Error("RenderKey should be deterministic")
	}
	if r1 == k.RenderKey("def", RenderKeyOpts{AxisID: "y", Format: "svg"}) {
		t.Error("different definition hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:abc:")

	dk := scoped.DefinitionKey("revenue")
	if dk != "user:abc:"+inner.DefinitionKey("revenue") {
		t.Errorf("DefinitionKey = %q, want prefixed inner key", dk)
	}

	rk := scoped.RenderKey("abc", RenderKeyOpts{Format: "svg"})
	if rk != "user:abc:"+inner.RenderKey("abc", RenderKeyOpts{Format: "svg"}) {
		t.Errorf("RenderKey = %q, want prefixed inner key", rk)
	}

	// Nil inner falls back to the default keyer.
	fallback := NewScopedKeyer(nil, "p:")
	if fallback.DefinitionKey("x") != "p:"+inner.DefinitionKey("x") {
		t.Error("nil inner should use the default keyer")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
	if h != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Non-retryable errors return immediately.
	calls := 0
	plain := errors.New("boom")
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return plain
	})
	if err != plain || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	// Retryable errors are retried until success.
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err=%v calls=%d, want success on attempt 2", err, calls)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(errors.New("plain")) {
		t.Error("plain error should not be retryable")
	}
	if !IsRetryable(Retryable(errors.New("x"))) {
		t.Error("wrapped error should be retryable")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}
