package order

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
// It implements a strictly sequential state machine; the numeric values
// define the total order used both for transition checks and for the
// master-order aggregate computation.
//
// State transitions:
//
//	Registered ──> Confirmed ──> Shipped ──> Received ──> Closed ──> Invoiced ──> Archived
//	     │              │            │            │           │
//	     └──────────────┴────────────┴────────────┴───────────┴──────────> Archived
//	                       (administrative override)
//
// The chain never skips and never reverses; the only escape hatch is the
// administrative override to Archived from any non-terminal status.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRegistered is the initial status set at checkout.
	// The order is waiting for the supplier to confirm delivery dates.
	StatusRegistered

	// StatusConfirmed indicates the supplier committed to delivery dates
	// for every line.
	StatusConfirmed

	// StatusShipped indicates the supplier handed the goods to a carrier
	// and attached a proof-of-shipment document.
	StatusShipped

	// StatusReceived indicates the station accepted the delivery and signed
	// the reception proof, possibly reporting non-conformities.
	StatusReceived

	// StatusClosed indicates the station considers the delivery settled.
	StatusClosed

	// StatusInvoiced indicates back office matched the order to an invoice.
	StatusInvoiced

	// StatusArchived is the terminal state. Reached from Invoiced in the
	// normal flow, or from any non-terminal status as an administrative
	// override. Archived orders no longer hold back their master order.
	StatusArchived
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusRegistered: "Registered",
		StatusConfirmed:  "Confirmed",
		StatusShipped:    "Shipped",
		StatusReceived:   "Received",
		StatusClosed:     "Closed",
		StatusInvoiced:   "Invoiced",
		StatusArchived:   "Archived",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusRegistered: "Registered",
		StatusConfirmed:  "Confirmed",
		StatusShipped:    "Shipped",
		StatusReceived:   "Received",
		StatusClosed:     "Closed",
		StatusInvoiced:   "Invoiced",
		StatusArchived:   "Archived",
	}
}

// Validate checks if the Status value is one of the seven valid statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation,
// as received on the transition API.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusArchived
}

// Before reports whether s precedes other in the lifecycle order.
func (s Status) Before(other Status) bool {
	return s < other
}
