// Package failure normalizes every error leaving the application layer into
// a uniform shape: a stable machine-readable kind plus a human-readable
// message. Callers (HTTP adapter, jobs, tests) branch on the kind and never
// on error string contents.
package failure

import (
	"errors"
	"fmt"

	"mealroute/internal/pkg/errs"
)

// Kind classifies a failure for callers.
type Kind int

const (
	// KindUnknown is an unclassified internal fault.
	KindUnknown Kind = iota

	// KindInvalidInput means the request itself is malformed: bad IDs,
	// out-of-range coordinates, empty order lines.
	KindInvalidInput

	// KindInvalidCustomer means the customer directory definitively rejected
	// the customer.
	KindInvalidCustomer

	// KindNoBranches means the restaurant has no branches at all.
	KindNoBranches

	// KindNoEligibleBranch means branches exist but none satisfies the
	// selection constraints.
	KindNoEligibleBranch

	// KindItemsUnavailable means the selected branch cannot fulfill one or
	// more of the requested lines.
	KindItemsUnavailable

	// KindNotFound means the referenced object does not exist.
	KindNotFound

	// KindInvalidTransition means the requested lifecycle move is not
	// allowed from the order's current status.
	KindInvalidTransition

	// KindTransitionConflict means a concurrent transition on the same
	// order won the race; the caller may re-read and retry.
	KindTransitionConflict

	// KindRemoteTimeout means a collaborator call exceeded its deadline.
	KindRemoteTimeout

	// KindRemoteUnavailable means a collaborator is unreachable or
	// circuit-broken.
	KindRemoteUnavailable
)

func getKindStrings() []string {
	return []string{
		"UNKNOWN",
		"INVALID_INPUT",
		"INVALID_CUSTOMER",
		"NO_BRANCHES",
		"NO_ELIGIBLE_BRANCH",
		"ITEMS_UNAVAILABLE",
		"NOT_FOUND",
		"INVALID_TRANSITION",
		"TRANSITION_CONFLICT",
		"REMOTE_TIMEOUT",
		"REMOTE_UNAVAILABLE",
	}
}

// String returns the stable wire name of the kind.
func (k Kind) String() string {
	names := getKindStrings()
	if k < 0 || int(k) >= len(names) {
		return names[KindUnknown]
	}
	return names[k]
}

// Failure is the uniform error envelope of the application layer. Every
// handler returns either a result or a *Failure, never a raw lower-level
// error.
type Failure struct {
	kind    Kind
	message string
	cause   error
}

// New creates a Failure of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Failure {
	return &Failure{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap creates a Failure of the given kind, keeping cause for unwrapping.
// The message is taken from cause.
func Wrap(kind Kind, cause error) *Failure {
	if cause == nil {
		return New(kind, "")
	}
	return &Failure{kind: kind, message: cause.Error(), cause: cause}
}

// Kind returns the failure classification.
func (f *Failure) Kind() Kind {
	return f.kind
}

// Message returns the human-readable description.
func (f *Failure) Message() string {
	return f.message
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.message == "" {
		return f.kind.String()
	}
	return fmt.Sprintf("%s: %s", f.kind, f.message)
}

// Unwrap exposes the underlying cause, if any.
func (f *Failure) Unwrap() error {
	return f.cause
}

// Retryable reports whether retrying the same request may succeed without
// any change on the caller's side. Only transient remote faults qualify.
func (f *Failure) Retryable() bool {
	return f.kind == KindRemoteTimeout || f.kind == KindRemoteUnavailable
}

// From classifies an arbitrary error into a Failure. Already-normalized
// failures pass through unchanged; domain and infrastructure errors are
// mapped by their type; anything unrecognized becomes KindUnknown.
func From(err error) *Failure {
	if err == nil {
		return nil
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}

	var transitionErr *errs.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return Wrap(KindInvalidTransition, err)
	}

	var conflictErr *errs.TransitionConflictError
	if errors.As(err, &conflictErr) {
		return Wrap(KindTransitionConflict, err)
	}

	var notFoundErr *errs.ObjectNotFoundError
	if errors.As(err, &notFoundErr) {
		return Wrap(KindNotFound, err)
	}

	var remoteErr *errs.RemoteCallError
	if errors.As(err, &remoteErr) {
		if remoteErr.Timeout {
			return Wrap(KindRemoteTimeout, err)
		}
		return Wrap(KindRemoteUnavailable, err)
	}

	if errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrValueIsRequired) {
		return Wrap(KindInvalidInput, err)
	}

	return Wrap(KindUnknown, err)
}
