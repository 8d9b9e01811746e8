package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

const customerServiceName = "customer-directory"

// CustomerDirectory is the HTTP client for the customer records service.
type CustomerDirectory struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	breaker *Breaker
}

// NewCustomerDirectory creates a client for the customer directory at
// baseURL. timeout bounds each call; zero disables the per-call deadline.
func NewCustomerDirectory(baseURL string, timeout time.Duration) *CustomerDirectory {
	return &CustomerDirectory{
		baseURL: baseURL,
		timeout: timeout,
		client:  newPooledClient(),
		breaker: NewBreaker(customerServiceName, 0, 0),
	}
}

// Validate reports whether the customer exists. A 404 is a definitive false;
// any other non-200 answer or transport fault is a remote-call error.
func (d *CustomerDirectory) Validate(ctx context.Context, customerID kernel.UUID) (bool, error) {
	if err := d.breaker.Allow(); err != nil {
		return false, err
	}

	ctx, cancel := callContext(ctx, d.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/v1/customers/%s", d.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		d.breaker.Failure()
		return false, errs.NewRemoteUnavailableError(customerServiceName, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.breaker.Failure()
		return false, classify(customerServiceName, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		d.breaker.Success()
		return true, nil
	case http.StatusNotFound:
		d.breaker.Success()
		return false, nil
	default:
		d.breaker.Failure()
		return false, errs.NewRemoteUnavailableError(
			customerServiceName,
			fmt.Errorf("unexpected status %s", resp.Status))
	}
}
