package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultThrottleWindow is how long an invocation waits for a newer one.
const DefaultThrottleWindow = 300 * time.Millisecond

const (
	throttleFileName = "throttle"
	leaseTimeout     = 250 * time.Millisecond
)

// Throttle drops superseded invocations. Each caller stamps a token into a
// shared file, sleeps through the window, and proceeds only if its token is
// still the latest. The launcher starts a process per keystroke, so only the
// last keystroke in a burst reaches the API.
type Throttle struct {
	path   string
	window time.Duration
	now    func() time.Time
}

// NewThrottle returns a throttle whose token file lives in dir.
func NewThrottle(dir string, window time.Duration) *Throttle {
	return &Throttle{
		path:   filepath.Join(dir, throttleFileName),
		window: window,
		now:    time.Now,
	}
}

// Allow reports whether this invocation is the latest one within the window.
func (t *Throttle) Allow(ctx context.Context) (bool, error) {
	token, err := t.stamp(ctx)
	if err != nil {
		return false, err
	}

	timer := time.NewTimer(t.window)
	select {
	case <-ctx.Done():
		timer.Stop()
		return false, ctx.Err()
	case <-timer.C:
	}

	return t.check(ctx, token)
}

func (t *Throttle) withLease(ctx context.Context, fn func(*lease) error) error {
	ctx, cancel := context.WithTimeout(ctx, leaseTimeout)
	defer cancel()
	l, err := openLease(ctx, t.path)
	if err != nil {
		return err
	}
	defer func() { _ = l.release() }()
	return fn(l)
}

func (t *Throttle) stamp(ctx context.Context) (string, error) {
	token := strconv.FormatInt(t.now().UnixNano(), 10) + "-" + strconv.Itoa(os.Getpid())
	if err := t.withLease(ctx, func(l *lease) error { return l.write(token) }); err != nil {
		return "", fmt.Errorf("failed to write throttle token: %w", err)
	}
	return token, nil
}

func (t *Throttle) check(ctx context.Context, token string) (bool, error) {
	var current string
	err := t.withLease(ctx, func(l *lease) error {
		var err error
		current, err = l.read()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to read throttle token: %w", err)
	}
	return current == token, nil
}
