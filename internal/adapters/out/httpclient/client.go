package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"mealroute/internal/pkg/errs"
)

// newPooledClient builds the shared http.Client. The client itself carries
// no timeout; deadlines come from the per-request context so callers stay in
// control.
func newPooledClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
	}
}

// classify maps a transport error onto the remote-call taxonomy: deadline
// and net timeouts become timeout errors, everything else marks the service
// unavailable.
func classify(service string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewRemoteTimeoutError(service, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.NewRemoteTimeoutError(service, err)
	}

	return errs.NewRemoteUnavailableError(service, err)
}

// callContext derives the per-request deadline. A zero timeout leaves the
// caller's context untouched.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
