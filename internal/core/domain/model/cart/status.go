package cart

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Status represents the lifecycle state of a cart.
//
// State transitions:
//
//	Draft ──> Processed
//
// A cart is Draft while the station is still composing it and becomes
// Processed atomically with order creation. Processed is final.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusDraft is the initial status; lines may still be added or changed.
	StatusDraft

	// StatusProcessed indicates the cart has been converted into orders.
	// This is a final state with no further transitions allowed.
	StatusProcessed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusDraft:     "Draft",
		StatusProcessed: "Processed",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != StatusDraft && s != StatusProcessed {
		return errs.NewValueIsInvalidErrorWithCause("cart status", fmt.Errorf("%d is not a valid cart status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
