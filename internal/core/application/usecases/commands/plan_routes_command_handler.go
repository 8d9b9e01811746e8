package commands

import (
	"context"
	"errors"
	"sort"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/metrics"
)

// ErrNoReadyOrders is returned when a planning pass finds nothing to plan.
// Callers running on a schedule treat it as a normal outcome, not a failure.
var ErrNoReadyOrders = errors.New("no orders are ready for delivery")

// PlannedRoute is one delivery tour for a single branch: the branch location
// followed by every customer stop in visiting order.
type PlannedRoute struct {
	RestaurantID kernel.UUID
	BranchID     kernel.UUID
	OrderIDs     []kernel.UUID
	Stops        []kernel.Location
	DistanceKm   float64
}

// PlanRoutesCommandHandler groups READY orders by branch and approximates a
// delivery route for each group. Orders without an assigned branch, and
// branches without a known location, are skipped: there is no point to start
// a tour from.
type PlanRoutesCommandHandler struct {
	ledger       ports.OrderLedger
	catalog      ports.CatalogDirectory
	approximator services.RouteApproximator
}

// NewPlanRoutesCommandHandler creates a handler over the order ledger and the
// catalog directory.
func NewPlanRoutesCommandHandler(
	ledger ports.OrderLedger,
	catalogDirectory ports.CatalogDirectory,
) PlanRoutesCommandHandler {
	return PlanRoutesCommandHandler{
		ledger:       ledger,
		catalog:      catalogDirectory,
		approximator: services.NewRouteApproximator(),
	}
}

type routeGroup struct {
	restaurantID kernel.UUID
	branchID     kernel.UUID
}

// Handle executes one planning pass. Routes come back sorted by branch ID so
// repeated passes over the same orders produce identical output.
func (h PlanRoutesCommandHandler) Handle(
	ctx context.Context,
	cmd PlanRoutesCommand,
) ([]PlannedRoute, error) {
	if err := cmd.Validate(); err != nil {
		return nil, failure.Wrap(failure.KindInvalidInput, err)
	}

	ready, err := h.ledger.ListByStatus(ctx, order.Ready)
	if err != nil {
		return nil, failure.From(err)
	}

	groups := make(map[routeGroup][]*order.Order)
	for _, readyOrder := range ready {
		if readyOrder.BranchID() == nil {
			continue
		}
		key := routeGroup{
			restaurantID: readyOrder.RestaurantID(),
			branchID:     *readyOrder.BranchID(),
		}
		groups[key] = append(groups[key], readyOrder)
	}
	if len(groups) == 0 {
		return nil, ErrNoReadyOrders
	}

	branchLocations, err := h.resolveBranchLocations(ctx, groups)
	if err != nil {
		return nil, failure.From(err)
	}

	routes := make([]PlannedRoute, 0, len(groups))
	for key, groupOrders := range groups {
		start, known := branchLocations[key.branchID]
		if !known {
			continue
		}

		orderIDs := make([]kernel.UUID, 0, len(groupOrders))
		stops := make([]kernel.Location, 0, len(groupOrders))
		for _, groupOrder := range groupOrders {
			orderIDs = append(orderIDs, groupOrder.ID())
			stops = append(stops, groupOrder.CustomerLocation())
		}

		route, routeErr := h.approximator.ApproximateRoute(start, stops)
		if routeErr != nil {
			return nil, failure.From(routeErr)
		}
		distanceKm, routeErr := h.approximator.RouteDistanceKm(route)
		if routeErr != nil {
			return nil, failure.From(routeErr)
		}

		routes = append(routes, PlannedRoute{
			RestaurantID: key.restaurantID,
			BranchID:     key.branchID,
			OrderIDs:     orderIDs,
			Stops:        route,
			DistanceKm:   distanceKm,
		})
		metrics.RoutesPlanned.Inc()
	}
	if len(routes) == 0 {
		return nil, ErrNoReadyOrders
	}

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].BranchID.String() < routes[j].BranchID.String()
	})
	return routes, nil
}

// resolveBranchLocations fetches each involved restaurant's branches once and
// indexes the branches with a known location by ID.
func (h PlanRoutesCommandHandler) resolveBranchLocations(
	ctx context.Context,
	groups map[routeGroup][]*order.Order,
) (map[kernel.UUID]kernel.Location, error) {
	seenRestaurants := make(map[kernel.UUID]bool)
	locations := make(map[kernel.UUID]kernel.Location)

	for key := range groups {
		if seenRestaurants[key.restaurantID] {
			continue
		}
		seenRestaurants[key.restaurantID] = true

		branches, err := h.catalog.BranchesForRestaurant(ctx, key.restaurantID)
		if err != nil {
			return nil, err
		}
		for _, branch := range branches {
			if branch.HasKnownLocation() {
				locations[branch.ID()] = branch.Location()
			}
		}
	}

	return locations, nil
}
