package http

import (
	"time"

	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/order"
)

// Error is the uniform error payload. Code carries the stable failure kind
// so clients branch on it instead of the message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	CustomerID    string             `json:"customerId"`
	RestaurantID  string             `json:"restaurantId"`
	Lines         []OrderLineRequest `json:"lines"`
	Location      LocationDTO        `json:"location"`
	MaxDistanceKm float64            `json:"maxDistanceKm,omitempty"`
}

// OrderLineRequest is one requested line of a new order.
type OrderLineRequest struct {
	CatalogItemID       string   `json:"catalogItemId"`
	Name                string   `json:"name"`
	Quantity            int      `json:"quantity"`
	UnitPrice           float64  `json:"unitPrice"`
	ExtraCharges        float64  `json:"extraCharges,omitempty"`
	SpecialInstructions []string `json:"specialInstructions,omitempty"`
}

// LocationDTO is a latitude/longitude pair.
type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateOrderStatusRequest is the body of PUT /api/v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Notes string `json:"notes,omitempty"`
}

// OrderResponse describes an order to API clients.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customerId"`
	RestaurantID string              `json:"restaurantId"`
	BranchID     *string             `json:"branchId"`
	Lines        []OrderLineResponse `json:"lines"`
	Location     LocationDTO         `json:"location"`
	Status       string              `json:"status"`
	Total        float64             `json:"total"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// OrderLineResponse is one line of an order response.
type OrderLineResponse struct {
	CatalogItemID       string   `json:"catalogItemId"`
	Name                string   `json:"name"`
	Quantity            int      `json:"quantity"`
	UnitPrice           float64  `json:"unitPrice"`
	ExtraCharges        float64  `json:"extraCharges"`
	SpecialInstructions []string `json:"specialInstructions,omitempty"`
	LineTotal           float64  `json:"lineTotal"`
}

// TransitionResponse is one entry of an order's history.
type TransitionResponse struct {
	Previous   *string   `json:"previous"`
	Next       string    `json:"next"`
	OccurredAt time.Time `json:"occurredAt"`
	Notes      string    `json:"notes,omitempty"`
}

// BranchResponse describes a branch candidate with its distance from the
// query location.
type BranchResponse struct {
	ID         string       `json:"id"`
	Location   *LocationDTO `json:"location"`
	DistanceKm float64      `json:"distanceKm"`
	Active     bool         `json:"active"`
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	var branchID *string
	if id := aggregate.BranchID(); id != nil {
		raw := id.String()
		branchID = &raw
	}

	lines := make([]OrderLineResponse, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLineResponse{
			CatalogItemID:       line.CatalogItemID().String(),
			Name:                line.Name(),
			Quantity:            line.Quantity(),
			UnitPrice:           line.UnitPrice(),
			ExtraCharges:        line.ExtraCharges(),
			SpecialInstructions: line.SpecialInstructions(),
			LineTotal:           line.LineTotal(),
		})
	}

	location := aggregate.CustomerLocation()

	return OrderResponse{
		ID:           aggregate.ID().String(),
		CustomerID:   aggregate.CustomerID().String(),
		RestaurantID: aggregate.RestaurantID().String(),
		BranchID:     branchID,
		Lines:        lines,
		Location: LocationDTO{
			Latitude:  location.Latitude(),
			Longitude: location.Longitude(),
		},
		Status:    aggregate.Status().String(),
		Total:     aggregate.Total(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

func historyToResponse(records []queries.GetOrderHistoryQueryResponse) []TransitionResponse {
	responses := make([]TransitionResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, TransitionResponse{
			Previous:   record.Previous,
			Next:       record.Next,
			OccurredAt: record.OccurredAt,
			Notes:      record.Notes,
		})
	}
	return responses
}
