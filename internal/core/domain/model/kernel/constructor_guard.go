package kernel

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller passes a nil validation error, so a failed check always carries a
// message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard makes zero-value structs detectable. Value objects and
// aggregates embed one and set it only inside their constructor, so Validate
// can tell a properly built instance from a struct literal or an
// uninitialized field. Every domain type in this model follows the pattern.
//
// Example usage:
//
//	var ErrActorNotConstructed = errors.New("Actor must be created via NewActor")
//
//	type Actor struct {
//	    id   UUID
//	    role Role
//	    guard ConstructorGuard
//	}
//
//	func NewActor(id UUID, role Role) (Actor, error) {
//	    if err := id.Validate(); err != nil {
//	        return Actor{}, err
//	    }
//	    if err := role.Validate(); err != nil {
//	        return Actor{}, err
//	    }
//	    return Actor{
//	        id:    id,
//	        role:  role,
//	        guard: NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (a Actor) Validate() error {
//	    return a.guard.Validate(ErrActorNotConstructed)
//	}
//
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state. Domain
// constructors assign it to the embedded guard field as their last step:
//
//	func NewMasterOrder(id UUID, reference string) MasterOrder {
//	    return MasterOrder{
//	        id:        id,
//	        reference: reference,
//	        guard:     NewConstructorGuard(),
//	    }
//	}
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object came from its constructor. For
// a zero-value guard it returns validationError, falling back to
// ErrDefaultConstructorGuard when validationError is nil. Domain objects call
// it first in their own Validate:
//
//	var ErrMasterOrderNotConstructed = errors.New("MasterOrder must be created via NewMasterOrder")
//
//	func (m MasterOrder) Validate() error {
//	    if err := m.guard.Validate(ErrMasterOrderNotConstructed); err != nil {
//	        return err
//	    }
//	    // Additional validation logic...
//	    return nil
//	}
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
