package queries

import (
	"context"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/ports"
)

// GetOrderHistoryQueryHandler reads an order's transition history from the
// ledger. An order with no history does not exist and comes back as
// KindNotFound.
type GetOrderHistoryQueryHandler struct {
	ledger ports.OrderLedger
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
func NewGetOrderHistoryQueryHandler(ledger ports.OrderLedger) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{ledger: ledger}
}

// Handle executes the history query. Records are returned oldest-first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, failure.Wrap(failure.KindInvalidInput, err)
	}

	records, err := h.ledger.History(ctx, query.OrderID())
	if err != nil {
		return nil, failure.From(err)
	}

	responses := make([]GetOrderHistoryQueryResponse, 0, len(records))
	for _, record := range records {
		response := GetOrderHistoryQueryResponse{
			OrderID:    record.OrderID(),
			Next:       record.Next().String(),
			OccurredAt: record.OccurredAt(),
			Notes:      record.Notes(),
		}
		if previous := record.Previous(); previous != nil {
			name := previous.String()
			response.Previous = &name
		}
		responses = append(responses, response)
	}

	return responses, nil
}
