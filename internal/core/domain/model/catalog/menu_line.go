package catalog

import (
	"fmt"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

// ErrMenuLineIsNotConstructed is returned when using an improperly
// initialized MenuLine.
var ErrMenuLineIsNotConstructed = errs.NewValueIsRequiredError(
	"menu line must be created via NewMenuLine constructor")

// MenuLine is a requested catalog item with a quantity, used for availability
// checks against a branch. Unlike order.Line, a request item rejects a
// quantity below 1 instead of clamping it: the caller asked for something
// specific and a nonsensical quantity is a caller error.
type MenuLine struct {
	catalogItemID kernel.UUID
	quantity      int

	guard guard.ConstructorGuard
}

// NewMenuLine creates a request item for the given catalog item. quantity
// must be at least 1.
func NewMenuLine(catalogItemID kernel.UUID, quantity int) (MenuLine, error) {
	if err := catalogItemID.Validate(); err != nil {
		return MenuLine{}, errs.NewValueIsRequiredErrorWithCause("catalogItemId", err)
	}
	if quantity < 1 {
		return MenuLine{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is less than 1", quantity))
	}

	return MenuLine{
		catalogItemID: catalogItemID,
		quantity:      quantity,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the menu line was created via NewMenuLine.
func (m MenuLine) Validate() error {
	return m.guard.Validate(ErrMenuLineIsNotConstructed)
}

// CatalogItemID returns the requested catalog item.
func (m MenuLine) CatalogItemID() kernel.UUID {
	return m.catalogItemID
}

// Quantity returns the requested quantity, always at least 1.
func (m MenuLine) Quantity() int {
	return m.quantity
}
