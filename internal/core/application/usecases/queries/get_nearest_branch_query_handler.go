package queries

import (
	"context"
	"errors"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/core/ports"
)

// GetNearestBranchQueryHandler resolves the closest active branch for a
// customer location. When no branch qualifies the handler returns nil
// without an error, matching "no result" rather than a fault.
type GetNearestBranchQueryHandler struct {
	catalog  ports.CatalogDirectory
	selector services.BranchSelector
}

// NewGetNearestBranchQueryHandler creates a handler for nearest-branch
// queries.
func NewGetNearestBranchQueryHandler(catalog ports.CatalogDirectory) GetNearestBranchQueryHandler {
	return GetNearestBranchQueryHandler{
		catalog:  catalog,
		selector: services.NewBranchSelector(),
	}
}

// Handle executes the nearest-branch query.
func (h GetNearestBranchQueryHandler) Handle(
	ctx context.Context,
	query GetNearestBranchQuery,
) (*GetNearestBranchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, failure.Wrap(failure.KindInvalidInput, err)
	}
	if err := query.CustomerLocation().Validate(); err != nil {
		// No reference point means no nearest branch, not a fault.
		return nil, nil
	}

	branches, err := h.catalog.BranchesForRestaurant(ctx, query.RestaurantID())
	if err != nil {
		return nil, failure.From(err)
	}

	branch, err := h.selector.Nearest(
		query.CustomerLocation(), branches, true, query.MaxDistanceKm())
	if err != nil {
		if errors.Is(err, services.ErrNoBranchFound) {
			return nil, nil
		}
		return nil, failure.From(err)
	}

	distanceKm, err := query.CustomerLocation().DistanceKm(branch.Location())
	if err != nil {
		return nil, failure.From(err)
	}

	return &GetNearestBranchQueryResponse{
		BranchID:   branch.ID(),
		Location:   branch.Location(),
		DistanceKm: distanceKm,
		Active:     branch.Active(),
	}, nil
}
