package queries

import (
	"context"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/core/ports"
)

// GetNearbyBranchesQueryHandler lists branches within the query radius,
// closest first. No matching branch yields an empty slice, not an error.
type GetNearbyBranchesQueryHandler struct {
	catalog  ports.CatalogDirectory
	selector services.BranchSelector
}

// NewGetNearbyBranchesQueryHandler creates a handler for nearby-branch
// queries.
func NewGetNearbyBranchesQueryHandler(catalog ports.CatalogDirectory) GetNearbyBranchesQueryHandler {
	return GetNearbyBranchesQueryHandler{
		catalog:  catalog,
		selector: services.NewBranchSelector(),
	}
}

// Handle executes the nearby-branches query. Only active branches are
// listed, closest first.
func (h GetNearbyBranchesQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyBranchesQuery,
) ([]GetNearbyBranchesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, failure.Wrap(failure.KindInvalidInput, err)
	}
	if err := query.CustomerLocation().Validate(); err != nil {
		// No reference point means an empty listing, not a fault.
		return []GetNearbyBranchesQueryResponse{}, nil
	}

	branches, err := h.catalog.BranchesForRestaurant(ctx, query.RestaurantID())
	if err != nil {
		return nil, failure.From(err)
	}

	ranked, err := h.selector.WithinSorted(
		query.CustomerLocation(), branches, query.RadiusKm(), true)
	if err != nil {
		return nil, failure.From(err)
	}

	responses := make([]GetNearbyBranchesQueryResponse, 0, len(ranked))
	for _, r := range ranked {
		branch := r.Branch()
		responses = append(responses, GetNearbyBranchesQueryResponse{
			BranchID:   branch.ID(),
			Location:   branch.Location(),
			DistanceKm: r.DistanceKm,
			Active:     branch.Active(),
		})
	}

	return responses, nil
}
