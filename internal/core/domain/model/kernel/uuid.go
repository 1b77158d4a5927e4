package kernel

import (
	"fmt"

	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one
// of the constructor functions. Validating a zero-value UUID returns this error.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object shared by every entity and aggregate in
// the domain model. It wraps github.com/google/uuid so that the rest of the
// code never touches the library type directly and the zero value can be told
// apart from a properly constructed identifier.
//
// A zero-value UUID is invalid. Obtain instances through NewUUID,
// UUIDFromString, or UUIDFromBytes.
//
// UUID is immutable and safe for concurrent use.
//
// Example usage:
//
//	// Generate an identifier for a new aggregate
//	orderID := kernel.NewUUID()
//
//	// Parse an identifier arriving over the wire
//	stationID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version-4 UUID. This is the way new aggregate
// identifiers are minted; the result always passes Validate.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the textual representation of a UUID. All formats the
// underlying library accepts are supported, including the braced and
// urn-prefixed variants. It is used when reconstructing identifiers from
// request paths, headers, and persistence.
//
// Example:
//
//	id, err := kernel.UUIDFromString(ctx.Param("id"))
//	if err != nil {
//	    return fmt.Errorf("invalid order ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from a 16-byte slice, rejecting slices of any
// other length and the nil UUID. It is the counterpart of Bytes for
// round-tripping identifiers through binary storage.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical lower-case hex-and-dashes form. The zero value
// renders as "00000000-0000-0000-0000-000000000000".
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying uuid.UUID, which the persistence layer stores
// directly in uuid columns. Callers needing an actual byte slice can index the
// returned value.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers carry the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value and nil for any
// identifier produced by a constructor. Aggregate constructors call it on
// every identifier they receive.
//
// Example:
//
//	func NewMasterOrder(id kernel.UUID) (*MasterOrder, error) {
//	    if err := id.Validate(); err != nil {
//	        return nil, fmt.Errorf("invalid master order ID: %w", err)
//	    }
//	    ...
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
