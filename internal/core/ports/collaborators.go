// Package ports defines the contracts between the routing core and its
// surroundings: the external collaborator services it orchestrates and the
// repository interfaces used by the ledger adapter. Production wiring uses
// network clients and a postgres-backed ledger; tests substitute in-memory
// fakes, which keeps the fail-fast sequential placement contract independent
// of any transport.
package ports

import (
	"context"

	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

// CustomerDirectory is the customer records service. The placement workflow
// only needs existence validation.
type CustomerDirectory interface {
	// Validate reports whether the customer exists and may place orders.
	// A transport or timeout failure is returned as an error, distinct from
	// a definitive "customer not found" false.
	Validate(ctx context.Context, customerID kernel.UUID) (bool, error)
}

// CatalogDirectory is the restaurant/menu catalog service.
type CatalogDirectory interface {
	// BranchesForRestaurant returns all branches of the restaurant as
	// transient read copies. An empty slice means the restaurant has no
	// branches; it is not an error.
	BranchesForRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*catalog.Branch, error)

	// CheckAvailability reports whether the branch can fulfill every
	// requested line in sufficient stock. Any single failing line makes the
	// whole check false.
	CheckAvailability(ctx context.Context, branchID kernel.UUID, lines []catalog.MenuLine) (bool, error)
}

// OrderLedger is the order record-keeping service. It owns order rows and
// their append-only transition history, and applies the lifecycle state
// machine to every change. Concurrent transitions on one order are
// serialized: of two simultaneous updates from the same prior status exactly
// one succeeds and the loser is rejected with a transition conflict.
type OrderLedger interface {
	// Create persists a new order in status NEW together with its creation
	// transition record.
	Create(
		ctx context.Context,
		customerID kernel.UUID,
		restaurantID kernel.UUID,
		branchID kernel.UUID,
		lines []order.Line,
		customerLocation kernel.Location,
	) (*order.Order, error)

	// UpdateStatus applies a guarded lifecycle transition and appends the
	// paired transition record, which is returned alongside the updated
	// order.
	UpdateStatus(
		ctx context.Context,
		orderID kernel.UUID,
		status order.Status,
		notes string,
	) (*order.Order, order.TransitionRecord, error)

	// Cancel moves the order to CANCELLED under the same transition rules.
	Cancel(ctx context.Context, orderID kernel.UUID, notes string) (*order.Order, order.TransitionRecord, error)

	// History returns the order's transition records in application order,
	// creation record first.
	History(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error)

	// ListByStatus returns all orders currently in the given status. Used by
	// auxiliary read paths such as delivery route planning.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}

// OrderEventPublisher broadcasts order status changes to interested
// consumers (tracking, notifications). Publication is best-effort: a failed
// publish never fails the originating workflow.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, record order.TransitionRecord) error
	Close() error
}
