package kernel

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Role identifies the kind of principal acting on the procurement system.
// Role resolution itself happens in the identity collaborator; the domain
// only consumes the resolved value and gates operations on it.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleStation is a purchasing site. Station actors carry the entity
	// identity of the station they act for.
	RoleStation

	// RoleSupplier is a vendor fulfilling purchase orders. Supplier actors
	// carry the entity identity of the supplier they act for.
	RoleSupplier

	// RoleManager is a back-office manager, not tied to a specific entity.
	RoleManager

	// RoleHandler is a fulfillment-hub operator, not tied to a specific entity.
	RoleHandler

	// RoleAdmin is a technical administrator, not tied to a specific entity.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleStation:  "Station",
		RoleSupplier: "Supplier",
		RoleManager:  "Manager",
		RoleHandler:  "Handler",
		RoleAdmin:    "Admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleStation:  "Station",
		RoleSupplier: "Supplier",
		RoleManager:  "Manager",
		RoleHandler:  "Handler",
		RoleAdmin:    "Admin",
	}
}

// Validate checks if the Role value is one of the known, valid roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements the fmt.Stringer interface and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses a role from its string representation as supplied by
// the identity collaborator. The comparison is exact and case-sensitive.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// IsEntityScoped reports whether actors with this role act on behalf of a
// specific entity (a station or a supplier) rather than the whole system.
func (r Role) IsEntityScoped() bool {
	return r == RoleStation || r == RoleSupplier
}
