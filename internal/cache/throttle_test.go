package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestThrottle_SingleCallerAllowed(t *testing.T) {
	th := NewThrottle(t.TempDir(), time.Millisecond)
	ok, err := th.Allow(context.Background())
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !ok {
		t.Fatal("Allow() = false for a lone caller")
	}
}

func TestThrottle_LaterCallerWins(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	first := NewThrottle(dir, time.Millisecond)
	first.now = func() time.Time { return time.Unix(100, 0) }
	second := NewThrottle(dir, time.Millisecond)
	second.now = func() time.Time { return time.Unix(100, 5) }

	firstToken, err := first.stamp(ctx)
	if err != nil {
		t.Fatalf("first stamp: %v", err)
	}
	secondToken, err := second.stamp(ctx)
	if err != nil {
		t.Fatalf("second stamp: %v", err)
	}

	if ok, err := first.check(ctx, firstToken); err != nil || ok {
		t.Fatalf("first.check() = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := second.check(ctx, secondToken); err != nil || !ok {
		t.Fatalf("second.check() = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestThrottle_ShorterTokenReplacesLonger(t *testing.T) {
	ctx := context.Background()
	th := NewThrottle(t.TempDir(), time.Millisecond)
	th.now = func() time.Time { return time.Unix(999999, 999) }
	if _, err := th.stamp(ctx); err != nil {
		t.Fatal(err)
	}
	th.now = func() time.Time { return time.Unix(0, 1) }
	token, err := th.stamp(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := th.check(ctx, token); err != nil || !ok {
		t.Fatalf("check() = (%v, %v), want (true, nil): stale bytes left behind", ok, err)
	}
}

func TestThrottle_ContextCancelled(t *testing.T) {
	th := NewThrottle(t.TempDir(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if ok, err := th.Allow(ctx); err == nil || ok {
		t.Fatalf("Allow() = (%v, %v), want (false, ctx error)", ok, err)
	}
}

func TestLease_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), throttleFileName)
	held, err := openLease(context.Background(), path)
	if err != nil {
		t.Fatalf("openLease() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := openLease(ctx, path); err == nil {
		t.Fatal("second openLease() succeeded while the lease was held")
	}

	if err := held.write("abc"); err != nil {
		t.Fatalf("write() error = %v", err)
	}
	if err := held.release(); err != nil {
		t.Fatalf("release() error = %v", err)
	}

	again, err := openLease(context.Background(), path)
	if err != nil {
		t.Fatalf("openLease() after release error = %v", err)
	}
	defer again.release()
	if got, err := again.read(); err != nil || got != "abc" {
		t.Fatalf("read() = (%q, %v), want abc", got, err)
	}
}
