package order

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
)

// TransitionRecord is one entry of an order's append-only audit trail. Exactly
// one record is produced per successful transition; records are never mutated
// or deleted. The creation record has a nil previous status.
type TransitionRecord struct {
	orderID    kernel.UUID
	previous   *Status
	next       Status
	occurredAt time.Time
	notes      string
}

// NewTransitionRecord creates an audit record for a transition of the given
// order. previous is nil only for the creation record.
func NewTransitionRecord(
	orderID kernel.UUID,
	previous *Status,
	next Status,
	occurredAt time.Time,
	notes string,
) (TransitionRecord, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionRecord{}, err
	}
	if err := next.Validate(); err != nil {
		return TransitionRecord{}, err
	}
	if previous != nil {
		if err := previous.Validate(); err != nil {
			return TransitionRecord{}, err
		}
	}
	if occurredAt.IsZero() {
		return TransitionRecord{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return TransitionRecord{
		orderID:    orderID,
		previous:   previous,
		next:       next,
		occurredAt: occurredAt,
		notes:      notes,
	}, nil
}

// OrderID returns the order this record belongs to.
func (r TransitionRecord) OrderID() kernel.UUID {
	return r.orderID
}

// Previous returns the status before the transition, or nil for the creation
// record.
func (r TransitionRecord) Previous() *Status {
	return r.previous
}

// Next returns the status after the transition.
func (r TransitionRecord) Next() Status {
	return r.next
}

// OccurredAt returns when the transition was applied.
func (r TransitionRecord) OccurredAt() time.Time {
	return r.occurredAt
}

// Notes returns the free-form annotation attached to the transition.
func (r TransitionRecord) Notes() string {
	return r.notes
}

// Validate reports whether the record carries a constructed order ID and a
// valid target status.
func (r TransitionRecord) Validate() error {
	return errors.Join(r.orderID.Validate(), r.next.Validate())
}
