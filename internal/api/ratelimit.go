package api

import (
	"context"
	"sync"
	"time"
)

// tokenBucket paces outbound requests. A page of previews goes out at once
// up to burst; after that one request is released every 1/rate seconds.
type tokenBucket struct {
	mu     sync.Mutex
	rate   float64
	burst  float64
	tokens float64
	last   time.Time
	now    func() time.Time
}

func newTokenBucket(rate float64, burst int) *tokenBucket {
	b := &tokenBucket{
		rate:   rate,
		burst:  float64(burst),
		tokens: float64(burst),
		now:    time.Now,
	}
	b.last = b.now()
	return b
}

// reserve takes a token and returns 0, or returns the delay until the next
// token without taking one.
func (b *tokenBucket) reserve() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.tokens = min(b.burst, b.tokens+now.Sub(b.last).Seconds()*b.rate)
	b.last = now
	if b.tokens >= 1 {
		b.tokens--
		return 0
	}
	return time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

// Wait blocks until a token is taken or ctx is done and reports how long it
// waited.
func (b *tokenBucket) Wait(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	for {
		delay := b.reserve()
		if delay == 0 {
			return time.Since(start), nil
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return time.Since(start), ctx.Err()
		case <-timer.C:
		}
	}
}
