// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and their relational
// representation.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status is indexed because both the transition CAS predicate
// and the by-status listings filter on it.
type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID      `gorm:"type:uuid;index"`
	RestaurantID     uuid.UUID      `gorm:"type:uuid;index"`
	BranchID         *uuid.UUID     `gorm:"type:uuid;index"`
	Lines            []OrderLineDTO `gorm:"foreignKey:OrderID;references:ID"`
	CustomerLocation LocationDTO    `gorm:"embedded;embeddedPrefix:customer_"`
	CreatedAt        time.Time
	Status           int `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one line of an order.
type OrderLineDTO struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement"`
	OrderID             uuid.UUID `gorm:"type:uuid;index"`
	CatalogItemID       uuid.UUID `gorm:"type:uuid"`
	Name                string
	Quantity            int
	UnitPrice           float64
	ExtraCharges        float64
	SpecialInstructions []string `gorm:"serializer:json"`
}

// TableName overrides GORM's default naming convention.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// LocationDTO represents embedded geographic coordinates.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// TransitionRecordDTO represents one row of an order's append-only status
// history. The surrogate key preserves insertion order for reads.
type TransitionRecordDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Previous   *int
	Next       int
	OccurredAt time.Time
	Notes      string
}

// TableName overrides GORM's default naming convention.
func (TransitionRecordDTO) TableName() string {
	return "order_transitions"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var branchID *uuid.UUID
	if id := aggregate.BranchID(); id != nil {
		raw := id.Bytes()
		branchID = &raw
	}

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:             aggregate.ID().Bytes(),
			CatalogItemID:       line.CatalogItemID().Bytes(),
			Name:                line.Name(),
			Quantity:            line.Quantity(),
			UnitPrice:           line.UnitPrice(),
			ExtraCharges:        line.ExtraCharges(),
			SpecialInstructions: line.SpecialInstructions(),
		})
	}

	location := aggregate.CustomerLocation()

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		BranchID:     branchID,
		Lines:        lines,
		CustomerLocation: LocationDTO{
			Latitude:  location.Latitude(),
			Longitude: location.Longitude(),
		},
		CreatedAt: aggregate.CreatedAt(),
		Status:    int(aggregate.Status()),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var branchID *kernel.UUID
	if dto.BranchID != nil {
		bID, branchErr := kernel.UUIDFromBytes((*dto.BranchID)[:])
		if branchErr != nil {
			return nil, branchErr
		}
		branchID = &bID
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	location, err := kernel.NewLocation(
		dto.CustomerLocation.Latitude, dto.CustomerLocation.Longitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, branchID,
		lines, location, dto.CreatedAt, order.Status(dto.Status))
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	catalogItemID, err := kernel.UUIDFromBytes(dto.CatalogItemID[:])
	if err != nil {
		return order.Line{}, err
	}

	return order.NewLine(
		catalogItemID, dto.Name, dto.Quantity,
		dto.UnitPrice, dto.ExtraCharges, dto.SpecialInstructions)
}

func transitionFromDomain(record order.TransitionRecord) TransitionRecordDTO {
	var previous *int
	if p := record.Previous(); p != nil {
		raw := int(*p)
		previous = &raw
	}

	return TransitionRecordDTO{
		OrderID:    record.OrderID().Bytes(),
		Previous:   previous,
		Next:       int(record.Next()),
		OccurredAt: record.OccurredAt(),
		Notes:      record.Notes(),
	}
}

func transitionToDomain(dto TransitionRecordDTO) (order.TransitionRecord, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}

	var previous *order.Status
	if dto.Previous != nil {
		status := order.Status(*dto.Previous)
		previous = &status
	}

	return order.NewTransitionRecord(
		orderID, previous, order.Status(dto.Next), dto.OccurredAt, dto.Notes)
}
