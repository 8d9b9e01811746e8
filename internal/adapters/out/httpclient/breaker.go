// Package httpclient contains outbound HTTP adapters for the customer and
// catalog directory services. Both clients share one pooled http.Client and
// a per-service circuit breaker, and classify every transport fault into the
// remote-call error taxonomy so the application layer can tell a timed-out
// collaborator from an unreachable one.
package httpclient

import (
	"errors"
	"sync"
	"time"

	"mealroute/internal/pkg/errs"
)

// ErrBreakerOpen is the cause carried by fast-fail errors while the breaker
// is open.
var ErrBreakerOpen = errors.New("circuit breaker is open")

const (
	defaultFailureThreshold = 5
	defaultCooldown         = 30 * time.Second
)

// Breaker is a consecutive-failure circuit breaker. After failureThreshold
// failures in a row it opens and fails calls fast without touching the
// network; after the cooldown one trial call is let through and its outcome
// decides whether the breaker closes again.
type Breaker struct {
	service          string
	failureThreshold int
	cooldown         time.Duration

	mu       sync.Mutex
	failures int
	openedAt time.Time
	probing  bool
	now      func() time.Time
}

// NewBreaker creates a breaker for the named service. Non-positive threshold
// or cooldown fall back to the package defaults.
func NewBreaker(service string, failureThreshold int, cooldown time.Duration) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = defaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}

	return &Breaker{
		service:          service,
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		now:              time.Now,
	}
}

// Allow reports whether a call may proceed. While open it returns an
// errs.RemoteCallError without any network activity.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.probing {
		// A trial call is already in flight; everyone else waits for its
		// outcome.
		return errs.NewRemoteUnavailableError(b.service, ErrBreakerOpen)
	}

	if b.failures < b.failureThreshold {
		return nil
	}

	if b.now().Sub(b.openedAt) >= b.cooldown {
		// Half-open: let exactly one trial through. A failure re-opens with
		// a fresh cooldown, a success closes the breaker.
		b.probing = true
		return nil
	}

	return errs.NewRemoteUnavailableError(b.service, ErrBreakerOpen)
}

// Success records a successful call and closes the breaker.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.probing = false
}

// Failure records a failed call, opening the breaker when the threshold is
// reached. A failed trial call re-opens immediately.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.probing {
		b.probing = false
		b.failures = b.failureThreshold
		b.openedAt = b.now()
		return
	}

	b.failures++
	if b.failures >= b.failureThreshold {
		b.openedAt = b.now()
	}
}
