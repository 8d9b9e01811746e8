package catalog

import (
	"errors"
	"fmt"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

// ErrBranchIsNotConstructed is returned when using an improperly initialized
// Branch.
var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

// Branch is a transient read copy of a restaurant branch owned by the catalog
// service. The routing core never mutates branches; it only ranks and filters
// them against a customer location.
//
// A branch may have an unknown location (the catalog has not geocoded it yet);
// such branches are skipped by distance-based selection rather than treated as
// being at coordinate (0,0).
type Branch struct {
	id                kernel.UUID
	restaurantID      kernel.UUID
	location          kernel.Location
	active            bool
	operatingRadiusKm float64

	guard guard.ConstructorGuard
}

// NewBranch creates a branch read copy. location may be the zero value to
// model an unknown location; operatingRadiusKm of 0 means the branch does not
// constrain its own delivery radius.
func NewBranch(
	id kernel.UUID,
	restaurantID kernel.UUID,
	location kernel.Location,
	active bool,
	operatingRadiusKm float64,
) (*Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("branchId", err)
	}
	if err := restaurantID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	if operatingRadiusKm < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"operatingRadiusKm", fmt.Errorf("%f is negative", operatingRadiusKm))
	}

	return &Branch{
		id:                id,
		restaurantID:      restaurantID,
		location:          location,
		active:            active,
		operatingRadiusKm: operatingRadiusKm,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the branch was created via NewBranch.
func (b *Branch) Validate() error {
	if b == nil {
		return ErrBranchIsNotConstructed
	}
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

// ID returns the branch identifier.
func (b *Branch) ID() kernel.UUID {
	return b.id
}

// RestaurantID returns the owning restaurant's identifier.
func (b *Branch) RestaurantID() kernel.UUID {
	return b.restaurantID
}

// Location returns the branch coordinate. Validate the result before distance
// calculations: it fails for branches with an unknown location.
func (b *Branch) Location() kernel.Location {
	return b.location
}

// HasKnownLocation reports whether the branch carries a usable coordinate.
func (b *Branch) HasKnownLocation() bool {
	return b.location.Validate() == nil
}

// Active reports whether the branch currently accepts orders.
func (b *Branch) Active() bool {
	return b.active
}

// OperatingRadiusKm returns the branch's own delivery radius, 0 when
// unconstrained.
func (b *Branch) OperatingRadiusKm() float64 {
	return b.operatingRadiusKm
}
