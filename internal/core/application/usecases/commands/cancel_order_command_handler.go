package commands

import (
	"context"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders through the ledger. Cancelling an
// already-terminal order fails with KindInvalidTransition.
type CancelOrderCommandHandler struct {
	ledger    ports.OrderLedger
	publisher ports.OrderEventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// The publisher may be nil, in which case no status events are emitted.
func NewCancelOrderCommandHandler(
	ledger ports.OrderLedger,
	publisher ports.OrderEventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		ledger:    ledger,
		publisher: publisher,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, failure.Wrap(failure.KindInvalidInput, err)
	}

	cancelled, record, err := h.ledger.Cancel(ctx, cmd.OrderID(), cmd.Notes())
	if err != nil {
		return nil, failure.From(err)
	}

	if h.publisher != nil {
		_ = h.publisher.PublishStatusChanged(ctx, record)
	}

	return cancelled, nil
}
