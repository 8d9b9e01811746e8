// Package rediscache decorates the catalog directory with a Redis read
// cache. Branch listings change rarely but are read on every placement, so
// they are cached with a short TTL; availability checks are stock-sensitive
// and always pass through.
//
// The cache is best-effort: a Redis fault degrades to a direct catalog call
// and never fails the request.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/ports"
)

const defaultBranchTTL = 2 * time.Minute

// CachedCatalogDirectory wraps a CatalogDirectory with a Redis cache for
// branch listings.
type CachedCatalogDirectory struct {
	inner  ports.CatalogDirectory
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalogDirectory creates the caching decorator. A non-positive
// ttl falls back to the package default.
func NewCachedCatalogDirectory(
	inner ports.CatalogDirectory,
	client *redis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedCatalogDirectory {
	if ttl <= 0 {
		ttl = defaultBranchTTL
	}

	return &CachedCatalogDirectory{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "catalog_cache"),
	}
}

// cachedBranch is the cache wire format. HasLocation distinguishes a branch
// at (0,0) from a branch with no known location.
type cachedBranch struct {
	ID                string  `json:"id"`
	RestaurantID      string  `json:"restaurantId"`
	HasLocation       bool    `json:"hasLocation"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Active            bool    `json:"active"`
	OperatingRadiusKm float64 `json:"operatingRadiusKm"`
}

func branchKey(restaurantID kernel.UUID) string {
	return fmt.Sprintf("catalog:branches:%s", restaurantID)
}

// BranchesForRestaurant serves the listing from cache when possible and
// falls back to the catalog on a miss or any cache fault.
func (c *CachedCatalogDirectory) BranchesForRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]*catalog.Branch, error) {
	key := branchKey(restaurantID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		branches, decodeErr := decodeBranches(payload)
		if decodeErr == nil {
			return branches, nil
		}
		c.logger.Warn("discarding undecodable cache entry", "key", key, "error", decodeErr)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("cache read failed", "key", key, "error", err)
	}

	branches, err := c.inner.BranchesForRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if payload, encodeErr := encodeBranches(branches); encodeErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("cache write failed", "key", key, "error", setErr)
		}
	}

	return branches, nil
}

// CheckAvailability always passes through to the catalog.
func (c *CachedCatalogDirectory) CheckAvailability(
	ctx context.Context,
	branchID kernel.UUID,
	lines []catalog.MenuLine,
) (bool, error) {
	return c.inner.CheckAvailability(ctx, branchID, lines)
}

func encodeBranches(branches []*catalog.Branch) ([]byte, error) {
	cached := make([]cachedBranch, 0, len(branches))
	for _, branch := range branches {
		entry := cachedBranch{
			ID:                branch.ID().String(),
			RestaurantID:      branch.RestaurantID().String(),
			HasLocation:       branch.HasKnownLocation(),
			Active:            branch.Active(),
			OperatingRadiusKm: branch.OperatingRadiusKm(),
		}
		if entry.HasLocation {
			entry.Latitude = branch.Location().Latitude()
			entry.Longitude = branch.Location().Longitude()
		}
		cached = append(cached, entry)
	}

	return json.Marshal(cached)
}

func decodeBranches(payload []byte) ([]*catalog.Branch, error) {
	var cached []cachedBranch
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, err
	}

	branches := make([]*catalog.Branch, 0, len(cached))
	for _, entry := range cached {
		id, err := kernel.UUIDFromString(entry.ID)
		if err != nil {
			return nil, err
		}
		restaurantID, err := kernel.UUIDFromString(entry.RestaurantID)
		if err != nil {
			return nil, err
		}

		var location kernel.Location
		if entry.HasLocation {
			location, err = kernel.NewLocation(entry.Latitude, entry.Longitude)
			if err != nil {
				return nil, err
			}
		}

		branch, err := catalog.NewBranch(
			id, restaurantID, location, entry.Active, entry.OperatingRadiusKm)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	return branches, nil
}
