// Package guard provides the constructor-guard pattern used across the domain
// model. Embedding a ConstructorGuard in a value object or command lets its
// Validate method distinguish properly constructed instances from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error was supplied and the object was not constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. The zero value fails validation, which makes accidental
// zero-value structs detectable at every boundary.
//
// Usage:
//
//	type PlaceOrderCommand struct {
//	    ...
//	    guard guard.ConstructorGuard
//	}
//
//	func NewPlaceOrderCommand(...) (PlaceOrderCommand, error) {
//	    cmd := PlaceOrderCommand{guard: guard.NewConstructorGuard()}
//	    ...
//	}
//
//	func (c PlaceOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was constructed, otherwise the given
// validationError (or ErrDefaultConstructorGuard when nil is passed).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
