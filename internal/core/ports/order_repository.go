package ports

import (
	"context"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

// OrderRepository persists the Order aggregate and its transition records.
type OrderRepository interface {
	// Add inserts a new order row.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateWithExpectedStatus writes the aggregate's current state only if
	// the stored row is still in expectedStatus (compare-and-set). When the
	// row has moved on, the update is rejected with
	// errs.TransitionConflictError and nothing is written.
	UpdateWithExpectedStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get loads the order or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, orderID kernel.UUID) (*order.Order, error)

	// GetAllInStatus returns every order currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// AddTransition appends one record to the order's transition history.
	AddTransition(ctx context.Context, record order.TransitionRecord) error

	// GetTransitions returns the order's history oldest-first.
	GetTransitions(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error)
}
