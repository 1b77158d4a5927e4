// Package guard provides a defensive programming helper that ensures commands
// and queries are only created through their designated constructor functions.
// Embedding a ConstructorGuard in a struct makes zero-value instances detectable,
// which keeps application-layer objects from bypassing their validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its constructor.
// The guard works by maintaining an internal flag that is only set to true when
// the object is created through the proper constructor function. Any attempt to
// use a zero-value struct will fail validation.
//
// Example usage:
//
//	var ErrCommandNotConstructed = errors.New("command must be created via its constructor")
//
//	type SomeCommand struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewSomeCommand(value string) (SomeCommand, error) {
//	    if value == "" {
//	        return SomeCommand{}, errors.New("value is required")
//	    }
//	    return SomeCommand{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c SomeCommand) Validate() error {
//	    return c.guard.Validate(ErrCommandNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its constructor.
// Returns validationError (or ErrDefaultConstructorGuard when validationError is nil)
// for zero-value instances, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
