package order

import (
	"errors"
	"slices"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the placement workflow. It is created once
// by the ledger, always in status New, and mutated only through validated
// status transitions afterwards. Orders are never deleted, only moved into a
// terminal state.
//
// Invariants:
//   - customer, restaurant and (once assigned) branch identifiers are valid
//   - at least one order line is present
//   - the customer location is a constructed coordinate
//   - every status change follows the lifecycle transition table
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	restaurantID     kernel.UUID
	branchID         *kernel.UUID
	lines            []Line
	createdAt        time.Time
	status           Status
	customerLocation kernel.Location

	isConstructed bool
}

// NewOrder creates a new order in status New. branchID may be nil when the
// order has not been routed to a branch yet; the placement workflow passes
// the selected branch.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	branchID *kernel.UUID,
	lines []Line,
	customerLocation kernel.Location,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setBranchID(branchID),
		o.setLines(lines),
		o.setCustomerLocation(customerLocation),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with an arbitrary
// lifecycle status. Used by repository adapters only.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	branchID *kernel.UUID,
	lines []Line,
	customerLocation kernel.Location,
	createdAt time.Time,
	status Status,
) (*Order, error) {
	o, err := NewOrder(id, customerID, restaurantID, branchID, lines, customerLocation, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the target restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// BranchID returns the fulfilling branch, or nil while unassigned.
func (o *Order) BranchID() *kernel.UUID {
	return o.branchID
}

// Lines returns a copy of the ordered line list.
func (o *Order) Lines() []Line {
	return slices.Clone(o.lines)
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CustomerLocation returns the drop-off coordinate.
func (o *Order) CustomerLocation() kernel.Location {
	return o.customerLocation
}

// Total returns the sum of all line totals.
func (o *Order) Total() float64 {
	var total float64
	for _, l := range o.lines {
		total += l.LineTotal()
	}
	return total
}

// CreationRecord returns the audit record for the initial New status. Its
// previous status is nil; this first assignment is always accepted.
func (o *Order) CreationRecord() (TransitionRecord, error) {
	if err := o.Validate(); err != nil {
		return TransitionRecord{}, err
	}
	return NewTransitionRecord(o.id, nil, New, o.createdAt, "order placed")
}

// TransitionTo advances the order to next, enforcing the lifecycle transition
// table, and returns the paired audit record. Illegal moves fail with an
// InvalidTransitionError carrying the attempted (from, to) pair and leave the
// order unchanged.
func (o *Order) TransitionTo(next Status, notes string, at time.Time) (TransitionRecord, error) {
	if err := o.Validate(); err != nil {
		return TransitionRecord{}, err
	}

	previous := o.status
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return TransitionRecord{}, err
	}

	record, err := NewTransitionRecord(o.id, &previous, newStatus, at, notes)
	if err != nil {
		return TransitionRecord{}, err
	}

	o.status = newStatus
	return record, nil
}

// Cancel moves the order to Cancelled. Cancellation is an ordinary guarded
// transition, not an interrupt: it fails on terminal orders the same way any
// other illegal move does.
func (o *Order) Cancel(notes string, at time.Time) (TransitionRecord, error) {
	return o.TransitionTo(Cancelled, notes, at)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setBranchID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branchId", err)
	}
	branchID := *id
	o.branchID = &branchID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = slices.Clone(lines)
	return nil
}

func (o *Order) setCustomerLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.customerLocation = location
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
