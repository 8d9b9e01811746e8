package services

import (
	"math"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

// RouteApproximator orders a set of delivery stops using the greedy
// nearest-unvisited heuristic: from the current position, always step to the
// closest remaining stop.
//
// This is NOT an optimal route. There is no backtracking and no global
// minimization; the result can be arbitrarily worse than the true shortest
// tour. It is a cheap, deterministic approximation for display and planning,
// never a correctness-critical input. On distance ties the first-encountered
// stop wins, so the output is stable for a fixed input ordering.
type RouteApproximator struct{}

// NewRouteApproximator creates a new RouteApproximator instance.
func NewRouteApproximator() RouteApproximator {
	return RouteApproximator{}
}

// ApproximateRoute returns the stops ordered by the nearest-unvisited
// heuristic, prefixed with start. Fails with a validation error when start is
// an unknown location, any stop is unknown, or stops is empty.
func (r RouteApproximator) ApproximateRoute(
	start kernel.Location,
	stops []kernel.Location,
) ([]kernel.Location, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, errs.NewValueIsRequiredError("stops")
	}
	for _, stop := range stops {
		if err := stop.Validate(); err != nil {
			return nil, err
		}
	}

	route := make([]kernel.Location, 0, len(stops)+1)
	route = append(route, start)

	remaining := make([]kernel.Location, len(stops))
	copy(remaining, stops)

	current := start
	for len(remaining) > 0 {
		nearestIdx := 0
		nearestDist := math.MaxFloat64

		for i, stop := range remaining {
			dist, err := current.DistanceKm(stop)
			if err != nil {
				return nil, err
			}
			if dist < nearestDist {
				nearestDist = dist
				nearestIdx = i
			}
		}

		current = remaining[nearestIdx]
		route = append(route, current)
		remaining = append(remaining[:nearestIdx], remaining[nearestIdx+1:]...)
	}

	return route, nil
}

// RouteDistanceKm returns the cumulative length of an ordered route in
// kilometers. Returns 0 for routes shorter than two points.
func (r RouteApproximator) RouteDistanceKm(route []kernel.Location) (float64, error) {
	var total float64
	for i := 1; i < len(route); i++ {
		dist, err := route[i-1].DistanceKm(route[i])
		if err != nil {
			return 0, err
		}
		total += dist
	}
	return total, nil
}
