package order

import (
	"slices"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when using an improperly initialized
// Line.
var ErrLineIsNotConstructed = guard.ErrDefaultConstructorGuard

// Line is one priced item of an order. Name and unit price are informational
// copies of catalog data taken at placement time; availability is checked
// against the catalog item ID and quantity only.
//
// Quantity below 1 is clamped up to 1 and negative monetary amounts are
// clamped up to 0 rather than rejected: a line always represents at least one
// unit at a non-negative price.
type Line struct {
	catalogItemID       kernel.UUID
	name                string
	quantity            int
	unitPrice           float64
	extraCharges        float64
	specialInstructions []string

	guard guard.ConstructorGuard
}

// NewLine creates an order line for the given catalog item. The instructions
// slice is copied so the line stays immutable; its relative order is
// preserved.
func NewLine(
	catalogItemID kernel.UUID,
	name string,
	quantity int,
	unitPrice float64,
	extraCharges float64,
	specialInstructions []string,
) (Line, error) {
	if err := catalogItemID.Validate(); err != nil {
		return Line{}, err
	}

	if quantity < 1 {
		quantity = 1
	}
	if unitPrice < 0 {
		unitPrice = 0
	}
	if extraCharges < 0 {
		extraCharges = 0
	}

	return Line{
		catalogItemID:       catalogItemID,
		name:                name,
		quantity:            quantity,
		unitPrice:           unitPrice,
		extraCharges:        extraCharges,
		specialInstructions: slices.Clone(specialInstructions),
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was created via NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// CatalogItemID returns the catalog item the line refers to.
func (l Line) CatalogItemID() kernel.UUID {
	return l.catalogItemID
}

// Name returns the informational item name.
func (l Line) Name() string {
	return l.name
}

// Quantity returns the ordered quantity, always at least 1.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the informational unit price, never negative.
func (l Line) UnitPrice() float64 {
	return l.unitPrice
}

// ExtraCharges returns additional per-line charges, never negative.
func (l Line) ExtraCharges() float64 {
	return l.extraCharges
}

// SpecialInstructions returns a copy of the ordered instruction list.
func (l Line) SpecialInstructions() []string {
	return slices.Clone(l.specialInstructions)
}

// LineTotal returns quantity * unitPrice + extraCharges.
func (l Line) LineTotal() float64 {
	return float64(l.quantity)*l.unitPrice + l.extraCharges
}
