// Package guard provides a defensive construction check for commands and
// queries. Embedding a ConstructorGuard in a struct makes it possible to
// detect whether the struct was created through its constructor function
// or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error, so validation always fails with a
// meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard tracks whether the embedding object was created through
// its designated constructor. The zero value is unconstructed.
//
// Example:
//
//	type ProcessOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewProcessOrderCommand(orderID kernel.UUID) (ProcessOrderCommand, error) {
//	    if err := orderID.Validate(); err != nil {
//	        return ProcessOrderCommand{}, err
//	    }
//	    return ProcessOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ProcessOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
