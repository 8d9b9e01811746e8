package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

const catalogServiceName = "catalog-directory"

// CatalogDirectory is the HTTP client for the restaurant catalog service.
type CatalogDirectory struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	breaker *Breaker
}

// NewCatalogDirectory creates a client for the catalog directory at baseURL.
// timeout bounds each call; zero disables the per-call deadline.
func NewCatalogDirectory(baseURL string, timeout time.Duration) *CatalogDirectory {
	return &CatalogDirectory{
		baseURL: baseURL,
		timeout: timeout,
		client:  newPooledClient(),
		breaker: NewBreaker(catalogServiceName, 0, 0),
	}
}

// branchPayload mirrors the catalog service's branch representation.
// Location is nullable: a branch without coordinates is still listed.
type branchPayload struct {
	ID                string           `json:"id"`
	RestaurantID      string           `json:"restaurantId"`
	Location          *locationPayload `json:"location"`
	Active            bool             `json:"active"`
	OperatingRadiusKm float64          `json:"operatingRadiusKm"`
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type availabilityRequest struct {
	Lines []availabilityLine `json:"lines"`
}

type availabilityLine struct {
	CatalogItemID string `json:"catalogItemId"`
	Quantity      int    `json:"quantity"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// BranchesForRestaurant fetches the restaurant's branches. Branches with no
// coordinates are returned with an unknown location; selection decides what
// to do with them.
func (d *CatalogDirectory) BranchesForRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]*catalog.Branch, error) {
	if err := d.breaker.Allow(); err != nil {
		return nil, err
	}

	ctx, cancel := callContext(ctx, d.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/v1/restaurants/%s/branches", d.baseURL, restaurantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		d.breaker.Failure()
		return nil, errs.NewRemoteUnavailableError(catalogServiceName, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.breaker.Failure()
		return nil, classify(catalogServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.breaker.Failure()
		return nil, errs.NewRemoteUnavailableError(
			catalogServiceName,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	var payloads []branchPayload
	if err = json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		d.breaker.Failure()
		return nil, errs.NewRemoteUnavailableError(catalogServiceName, err)
	}
	d.breaker.Success()

	branches := make([]*catalog.Branch, 0, len(payloads))
	for _, payload := range payloads {
		branch, branchErr := branchToDomain(payload)
		if branchErr != nil {
			return nil, branchErr
		}
		branches = append(branches, branch)
	}

	return branches, nil
}

// CheckAvailability asks the branch whether it can fulfill every requested
// line.
func (d *CatalogDirectory) CheckAvailability(
	ctx context.Context,
	branchID kernel.UUID,
	lines []catalog.MenuLine,
) (bool, error) {
	if err := d.breaker.Allow(); err != nil {
		return false, err
	}

	ctx, cancel := callContext(ctx, d.timeout)
	defer cancel()

	request := availabilityRequest{Lines: make([]availabilityLine, 0, len(lines))}
	for _, line := range lines {
		request.Lines = append(request.Lines, availabilityLine{
			CatalogItemID: line.CatalogItemID().String(),
			Quantity:      line.Quantity(),
		})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return false, errs.NewRemoteUnavailableError(catalogServiceName, err)
	}

	url := fmt.Sprintf("%s/api/v1/branches/%s/availability", d.baseURL, branchID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		d.breaker.Failure()
		return false, errs.NewRemoteUnavailableError(catalogServiceName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.breaker.Failure()
		return false, classify(catalogServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.breaker.Failure()
		return false, errs.NewRemoteUnavailableError(
			catalogServiceName,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	var response availabilityResponse
	if err = json.NewDecoder(resp.Body).Decode(&response); err != nil {
		d.breaker.Failure()
		return false, errs.NewRemoteUnavailableError(catalogServiceName, err)
	}
	d.breaker.Success()

	return response.Available, nil
}

func branchToDomain(payload branchPayload) (*catalog.Branch, error) {
	id, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromString(payload.RestaurantID)
	if err != nil {
		return nil, err
	}

	var location kernel.Location
	if payload.Location != nil {
		location, err = kernel.NewLocation(payload.Location.Latitude, payload.Location.Longitude)
		if err != nil {
			return nil, err
		}
	}

	return catalog.NewBranch(id, restaurantID, location, payload.Active, payload.OperatingRadiusKm)
}
