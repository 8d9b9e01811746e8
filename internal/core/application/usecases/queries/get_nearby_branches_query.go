package queries

import (
	"errors"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var (
	ErrGetNearbyBranchesQueryIsNotConstructed = errors.New(
		"GetNearbyBranchesQuery must be created via NewGetNearbyBranchesQuery constructor",
	)
	ErrRadiusIsInvalid = errors.New("radius must not be negative")
)

// DefaultNearbyRadiusKm is applied when a nearby-branches query does not
// specify a radius.
const DefaultNearbyRadiusKm = 10.0

// GetNearbyBranchesQuery lists a restaurant's branches within a radius of
// the customer, closest first.
type GetNearbyBranchesQuery struct {
	restaurantID     kernel.UUID
	customerLocation kernel.Location
	radiusKm         float64

	guard guard.ConstructorGuard
}

// NewGetNearbyBranchesQuery creates a nearby-branches query. A zero radius
// falls back to DefaultNearbyRadiusKm. An unknown customer location is
// accepted; the handler answers it with an empty listing.
func NewGetNearbyBranchesQuery(
	restaurantID kernel.UUID,
	customerLocation kernel.Location,
	radiusKm float64,
) (GetNearbyBranchesQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetNearbyBranchesQuery{}, err
	}
	if radiusKm < 0 {
		return GetNearbyBranchesQuery{}, ErrRadiusIsInvalid
	}
	if radiusKm == 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	return GetNearbyBranchesQuery{
		restaurantID:     restaurantID,
		customerLocation: customerLocation,
		radiusKm:         radiusKm,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearbyBranchesQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyBranchesQueryIsNotConstructed)
}

// RestaurantID returns the restaurant whose branches are searched.
func (q GetNearbyBranchesQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// CustomerLocation returns the center of the search radius.
func (q GetNearbyBranchesQuery) CustomerLocation() kernel.Location {
	return q.customerLocation
}

// RadiusKm returns the effective search radius.
func (q GetNearbyBranchesQuery) RadiusKm() float64 {
	return q.radiusKm
}

// GetNearbyBranchesQueryResponse is one branch within the search radius.
type GetNearbyBranchesQueryResponse struct {
	BranchID   kernel.UUID
	Location   kernel.Location
	DistanceKm float64
	Active     bool
}
