package order

import (
	"fmt"

	"mealroute/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	NEW ──> PROCESSING ──> CONFIRMED ──> IN_PREPARATION ──> READY ──> COMPLETED
//	 │          │              │               │              │
//	 └──────────┴──────────────┴───────────────┴──────────────┴────> CANCELLED
//
// COMPLETED and CANCELLED are terminal: no outgoing transitions exist, an
// order is never reopened. Every other state may advance exactly one step
// forward or be cancelled; skipping states and moving backward are illegal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is assigned at creation time; the only initial state.
	New

	// Processing indicates the order has been accepted for handling.
	Processing

	// Confirmed indicates the branch has confirmed the order.
	Confirmed

	// InPreparation indicates the kitchen is preparing the order.
	InPreparation

	// Ready indicates the order is ready for pickup or delivery.
	Ready

	// Completed indicates the order was fulfilled. Terminal.
	Completed

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "UNKNOWN",
		New:           "NEW",
		Processing:    "PROCESSING",
		Confirmed:     "CONFIRMED",
		InPreparation: "IN_PREPARATION",
		Ready:         "READY",
		Completed:     "COMPLETED",
		Cancelled:     "CANCELLED",
	}
}

// allowedTransitions is the full transition table. Terminal states map to an
// empty set.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		New:           {Processing, Cancelled},
		Processing:    {Confirmed, Cancelled},
		Confirmed:     {InPreparation, Cancelled},
		InPreparation: {Ready, Cancelled},
		Ready:         {Completed, Cancelled},
		Completed:     {},
		Cancelled:     {},
	}
}

// ParseStatus converts the wire representation (e.g. "IN_PREPARATION") to a
// Status. Returns a validation error for unrecognized names.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate reports whether the Status is one of the defined lifecycle states.
// Unknown and any other out-of-range value are invalid.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer and is
// safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether moving from s to next is allowed by the
// transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move from s to next and returns next on success.
// Illegal moves (backward, state skipping, or out of a terminal state) fail
// with an InvalidTransitionError carrying the attempted (from, to) pair.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), next.String())
	}

	return next, nil
}
