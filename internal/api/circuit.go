package api

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while GIPHY keeps failing and requests are
// being short-circuited.
var ErrCircuitOpen = errors.New("circuit breaker open: GIPHY API is unavailable, backing off")

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

var circuitStateNames = map[circuitState]string{
	circuitClosed:   "closed",
	circuitOpen:     "open",
	circuitHalfOpen: "half-open",
}

func (s circuitState) String() string {
	if name, ok := circuitStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// circuitBreaker opens after threshold consecutive 429/5xx responses and
// lets a single probe through once cooldown has passed.
type circuitBreaker struct {
	mu        sync.Mutex
	current   circuitState
	failures  int
	threshold int
	cooldown  time.Duration
	openedAt  time.Time
	now       func() time.Time
}

func newCircuitBreaker(threshold int, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// allow reports the state a request runs under and whether it may run.
func (cb *circuitBreaker) allow() (circuitState, bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.current == circuitOpen {
		if cb.now().Sub(cb.openedAt) < cb.cooldown {
			return circuitOpen, false
		}
		cb.current = circuitHalfOpen
	}
	return cb.current, true
}

// record applies one outcome and returns the transition it caused.
func (cb *circuitBreaker) record(failed bool) (from, to circuitState) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	from = cb.current
	if !failed {
		cb.failures = 0
		cb.current = circuitClosed
		return from, cb.current
	}
	cb.failures++
	if from == circuitHalfOpen || cb.failures >= cb.threshold {
		cb.current = circuitOpen
		cb.openedAt = cb.now()
	}
	return from, cb.current
}

func (cb *circuitBreaker) state() circuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.current
}
