package order

import (
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// TransitionPayload carries the data a status transition may require.
// Document references are opaque keys obtained from object storage before
// the transition call; the state machine never uploads bytes itself.
// Only the fields relevant to the requested target status are read.
type TransitionPayload struct {
	// ConfirmedDeliveryDates maps product id to the date the supplier
	// commits to. Required for Confirmed, one entry per order line.
	ConfirmedDeliveryDates map[kernel.UUID]time.Time

	// Carrier and TrackingNumber describe the shipment. Optional.
	Carrier        string
	TrackingNumber string

	// ShipmentProofKey is the proof-of-shipment document reference.
	// Required for Shipped.
	ShipmentProofKey string

	// ReceptionProofKey is the signed proof-of-reception document
	// reference. Required for Received.
	ReceptionProofKey string

	// ReceivedQuantities maps product id to the quantity actually
	// received. Read for Received; lines without an entry keep zero.
	ReceivedQuantities map[kernel.UUID]int

	// NonConformities are discrepancies reported with the reception.
	NonConformities []NonConformity
}

// ownerKind states which of the order's parties a transition is reserved to.
type ownerKind int

const (
	ownerNone ownerKind = iota
	ownerSupplier
	ownerStation
)

// transitionRule is one row of the authoritative transition table: the unique
// required predecessor, who may perform the transition, and the side effect
// it applies. Every transition check flows through this table; there is no
// other permission or precondition logic.
type transitionRule struct {
	predecessor Status

	// fromAnyNonTerminal marks the administrative override to Archived,
	// which accepts any non-terminal current status.
	fromAnyNonTerminal bool

	roles []kernel.Role
	owner ownerKind

	// apply validates the payload for this transition and mutates the
	// order accordingly. Nil for transitions without side effects.
	apply func(o *PurchaseOrder, p TransitionPayload, at time.Time) error
}

func getTransitionRules() map[Status]transitionRule {
	return map[Status]transitionRule{
		StatusConfirmed: {
			predecessor: StatusRegistered,
			roles:       []kernel.Role{kernel.RoleSupplier},
			owner:       ownerSupplier,
			apply:       applyConfirmation,
		},
		StatusShipped: {
			predecessor: StatusConfirmed,
			roles:       []kernel.Role{kernel.RoleSupplier},
			owner:       ownerSupplier,
			apply:       applyShipment,
		},
		StatusReceived: {
			predecessor: StatusShipped,
			roles:       []kernel.Role{kernel.RoleStation},
			owner:       ownerStation,
			apply:       applyReception,
		},
		StatusClosed: {
			predecessor: StatusReceived,
			roles:       []kernel.Role{kernel.RoleStation},
			owner:       ownerStation,
		},
		StatusInvoiced: {
			predecessor: StatusClosed,
			roles:       []kernel.Role{kernel.RoleManager, kernel.RoleHandler},
		},
		StatusArchived: {
			predecessor:        StatusInvoiced,
			fromAnyNonTerminal: true,
			roles:              []kernel.Role{kernel.RoleManager, kernel.RoleHandler},
		},
	}
}

// Transition validates and applies a status transition, enforcing in order:
// the source-status precondition, the actor's role and entity ownership,
// and payload completeness. On success the order is mutated, the side
// effects of the transition are applied, and a history entry is appended.
//
// Failure taxonomy:
//   - a target that is never reachable from the current status yields a
//     value-is-invalid error (the request itself is malformed)
//   - a target whose transition has already happened (including a lost
//     concurrent race) yields a status-conflict error
//   - a role or ownership mismatch yields a not-authorized error
//   - a missing payload field yields a value-is-required error
func (o *PurchaseOrder) Transition(target Status, actor kernel.Actor, payload TransitionPayload) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	rule, ok := getTransitionRules()[target]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("target status",
			fmt.Errorf("%s is not a reachable status", target))
	}

	if rule.fromAnyNonTerminal {
		if o.status.IsTerminal() {
			return errs.NewStatusConflictError("order is already Archived")
		}
	} else if o.status != rule.predecessor {
		if o.status == target {
			return errs.NewStatusConflictError(fmt.Sprintf("order is already %s", target))
		}
		return errs.NewValueIsInvalidErrorWithCause("target status",
			fmt.Errorf("cannot move from %s to %s, required predecessor is %s",
				o.status, target, rule.predecessor))
	}

	if err := o.authorize(rule, target, actor); err != nil {
		return err
	}

	now := time.Now().UTC()
	if rule.apply != nil {
		if err := rule.apply(o, payload, now); err != nil {
			return err
		}
	}

	o.status = target
	o.history = append(o.history, HistoryEntry{Status: target, At: now, ActorID: actor.ID()})
	return nil
}

func (o *PurchaseOrder) authorize(rule transitionRule, target Status, actor kernel.Actor) error {
	allowed := false
	for _, role := range rule.roles {
		if actor.Role() == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return errs.NewNotAuthorizedError(
			fmt.Sprintf("role %s cannot move orders to %s", actor.Role(), target))
	}

	switch rule.owner {
	case ownerSupplier:
		if !actor.ActsFor(o.supplierID) {
			return errs.NewNotAuthorizedError("actor does not act for the supplier of this order")
		}
	case ownerStation:
		if !actor.ActsFor(o.stationID) {
			return errs.NewNotAuthorizedError("actor does not act for the station of this order")
		}
	case ownerNone:
	}

	return nil
}

// applyConfirmation stores the supplier's confirmed delivery date on every
// line. Each line must have an entry; partial confirmations are rejected.
func applyConfirmation(o *PurchaseOrder, p TransitionPayload, _ time.Time) error {
	for i := range o.lines {
		date, ok := p.ConfirmedDeliveryDates[o.lines[i].productID]
		if !ok || date.IsZero() {
			return errs.NewValueIsRequiredError(
				"confirmed delivery date for product " + o.lines[i].productID.String())
		}
		d := date
		o.lines[i].confirmedDeliveryDate = &d
	}
	return nil
}

// applyShipment stamps the ship date and stores carrier, tracking number,
// and the mandatory proof-of-shipment reference.
func applyShipment(o *PurchaseOrder, p TransitionPayload, at time.Time) error {
	shipment, err := NewShipmentInfo(p.Carrier, p.TrackingNumber, p.ShipmentProofKey, at)
	if err != nil {
		return err
	}

	o.shipment = &shipment
	return nil
}

// applyReception stamps the reception date, stores the mandatory signed
// proof reference, updates received quantities, and records any
// non-conformities reported with the delivery.
func applyReception(o *PurchaseOrder, p TransitionPayload, at time.Time) error {
	reception, err := NewReceptionInfo(p.ReceptionProofKey, at)
	if err != nil {
		return err
	}

	for productID, qty := range p.ReceivedQuantities {
		if qty < 0 {
			return errs.NewValueIsInvalidErrorWithCause("received quantity",
				fmt.Errorf("%d is negative", qty))
		}
		found := false
		for i := range o.lines {
			if o.lines[i].productID.IsEqual(productID) {
				o.lines[i].quantityReceived = qty
				found = true
				break
			}
		}
		if !found {
			return errs.NewValueIsInvalidErrorWithCause("received quantity",
				fmt.Errorf("product %s is not on this order", productID))
		}
	}

	o.reception = &reception
	o.nonConformities = append(o.nonConformities, p.NonConformities...)
	return nil
}
