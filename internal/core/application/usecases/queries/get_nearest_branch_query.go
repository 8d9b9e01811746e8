package queries

import (
	"errors"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var (
	ErrGetNearestBranchQueryIsNotConstructed = errors.New(
		"GetNearestBranchQuery must be created via NewGetNearestBranchQuery constructor",
	)
	ErrDistanceCapIsInvalid = errors.New("max distance must not be negative")
)

// GetNearestBranchQuery finds the closest active branch of a restaurant to a
// customer location. A zero maxDistanceKm means no distance cap.
type GetNearestBranchQuery struct {
	restaurantID     kernel.UUID
	customerLocation kernel.Location
	maxDistanceKm    float64

	guard guard.ConstructorGuard
}

// NewGetNearestBranchQuery creates a nearest-branch query. An unknown
// customer location is accepted; the handler answers it with no result.
func NewGetNearestBranchQuery(
	restaurantID kernel.UUID,
	customerLocation kernel.Location,
	maxDistanceKm float64,
) (GetNearestBranchQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetNearestBranchQuery{}, err
	}
	if maxDistanceKm < 0 {
		return GetNearestBranchQuery{}, ErrDistanceCapIsInvalid
	}

	return GetNearestBranchQuery{
		restaurantID:     restaurantID,
		customerLocation: customerLocation,
		maxDistanceKm:    maxDistanceKm,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearestBranchQuery) Validate() error {
	return q.guard.Validate(ErrGetNearestBranchQueryIsNotConstructed)
}

// RestaurantID returns the restaurant whose branches are searched.
func (q GetNearestBranchQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// CustomerLocation returns the point distances are measured from.
func (q GetNearestBranchQuery) CustomerLocation() kernel.Location {
	return q.customerLocation
}

// MaxDistanceKm returns the distance cap. Zero means unlimited.
func (q GetNearestBranchQuery) MaxDistanceKm() float64 {
	return q.maxDistanceKm
}

// GetNearestBranchQueryResponse describes one branch candidate with its
// distance from the customer.
type GetNearestBranchQueryResponse struct {
	BranchID   kernel.UUID
	Location   kernel.Location
	DistanceKm float64
	Active     bool
}
