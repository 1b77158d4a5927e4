package kernel

import (
	"errors"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated principal on whose behalf an operation runs.
// Authentication happens outside this core; the Actor value object only
// carries the resolved identity, role, and, for entity-scoped roles,
// the station or supplier the principal acts for.
//
// Actor is immutable and safe to copy.
type Actor struct {
	// id is the principal's own identity (a user id).
	id UUID

	// role determines which lifecycle operations the actor may perform.
	role Role

	// entityID is the station or supplier the actor belongs to.
	// Nil for roles that are not entity-scoped (Manager, Handler, Admin).
	entityID *UUID

	// isConstructed ensures the actor was created via NewActor
	isConstructed bool
}

// NewActor creates a validated Actor.
//
// Entity-scoped roles (Station, Supplier) must supply a non-nil entityID;
// system-wide roles must not rely on one (a supplied entityID is kept but
// carries no authority for them).
func NewActor(id UUID, role Role, entityID *UUID) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	if role.IsEntityScoped() {
		if entityID == nil {
			return Actor{}, errors.New(role.String() + " actor requires an entity identity")
		}
		if err := entityID.Validate(); err != nil {
			return Actor{}, err
		}
	}

	return Actor{
		id:            id,
		role:          role,
		entityID:      entityID,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor instance was properly constructed through NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the principal's own identity.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's resolved role.
func (a Actor) Role() Role {
	return a.role
}

// EntityID returns the station or supplier identity the actor acts for,
// or nil for system-wide roles.
func (a Actor) EntityID() *UUID {
	return a.entityID
}

// ActsFor reports whether the actor is entity-scoped and acts on behalf
// of the given entity.
func (a Actor) ActsFor(entityID UUID) bool {
	return a.entityID != nil && a.entityID.IsEqual(entityID)
}
