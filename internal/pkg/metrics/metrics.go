// Package metrics exposes the service's Prometheus instrumentation. The
// /metrics endpoint serves the default registry via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlaced counts successfully placed orders.
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealroute_orders_placed_total",
		Help: "Number of orders successfully placed.",
	})

	// OrderFailures counts failed operations by failure kind.
	OrderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealroute_order_failures_total",
		Help: "Number of failed order operations, labeled by failure kind.",
	}, []string{"kind"})

	// StatusTransitions counts applied lifecycle transitions by target
	// status.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealroute_status_transitions_total",
		Help: "Number of applied order status transitions, labeled by target status.",
	}, []string{"status"})

	// RoutesPlanned counts delivery routes produced by the planning job.
	RoutesPlanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealroute_routes_planned_total",
		Help: "Number of delivery routes produced by the route planning job.",
	})
)
