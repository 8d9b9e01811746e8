package commands

import (
	"context"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies guarded lifecycle transitions
// through the ledger and emits a status event on success.
type UpdateOrderStatusCommandHandler struct {
	ledger    ports.OrderLedger
	publisher ports.OrderEventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
// The publisher may be nil, in which case no status events are emitted.
func NewUpdateOrderStatusCommandHandler(
	ledger ports.OrderLedger,
	publisher ports.OrderEventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		ledger:    ledger,
		publisher: publisher,
	}
}

// Handle processes the status update. Disallowed transitions come back as
// KindInvalidTransition, lost concurrent races as KindTransitionConflict.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, failure.Wrap(failure.KindInvalidInput, err)
	}

	updated, record, err := h.ledger.UpdateStatus(ctx, cmd.OrderID(), cmd.Status(), cmd.Notes())
	if err != nil {
		return nil, failure.From(err)
	}

	if h.publisher != nil {
		_ = h.publisher.PublishStatusChanged(ctx, record)
	}

	return updated, nil
}
