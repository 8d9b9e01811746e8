package commands

import (
	"errors"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
	ErrMaxDistanceIsInvalid  = errors.New("max distance must not be negative")
)

// PlaceOrderCommand represents a request to place a new meal order.
// Carries the customer identity, the target restaurant, the requested lines
// and the delivery location used for branch selection.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(customerID, restaurantID, lines, location, 0)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	placed, failure := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID       kernel.UUID
	restaurantID     kernel.UUID
	lines            []order.Line
	customerLocation kernel.Location
	maxDistanceKm    float64

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order. A zero
// maxDistanceKm means no distance constraint on branch selection.
// Returns an error if any validation fails.
func NewPlaceOrderCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lines []order.Line,
	customerLocation kernel.Location,
	maxDistanceKm float64,
) (PlaceOrderCommand, error) {
	placeCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		placeCommand.setCustomerID(customerID),
		placeCommand.setRestaurantID(restaurantID),
		placeCommand.setLines(lines),
		placeCommand.setCustomerLocation(customerLocation),
		placeCommand.setMaxDistanceKm(maxDistanceKm),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return placeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identifier.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the target restaurant's identifier.
func (c PlaceOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Lines returns a copy of the requested order lines.
func (c PlaceOrderCommand) Lines() []order.Line {
	lines := make([]order.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// CustomerLocation returns the delivery location.
func (c PlaceOrderCommand) CustomerLocation() kernel.Location {
	return c.customerLocation
}

// MaxDistanceKm returns the branch selection distance cap.
// Zero means unlimited.
func (c PlaceOrderCommand) MaxDistanceKm() float64 {
	return c.maxDistanceKm
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = make([]order.Line, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *PlaceOrderCommand) setCustomerLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.customerLocation = location
	return nil
}

func (c *PlaceOrderCommand) setMaxDistanceKm(maxDistanceKm float64) error {
	if maxDistanceKm < 0 {
		return ErrMaxDistanceIsInvalid
	}

	c.maxDistanceKm = maxDistanceKm
	return nil
}
