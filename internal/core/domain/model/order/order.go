package order

import (
	"errors"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when a PurchaseOrder instance was
	// not created through NewPurchaseOrder or RestorePurchaseOrder.
	ErrOrderIsNotConstructed = errors.New("PurchaseOrder must be created via NewPurchaseOrder constructor")

	// ErrOrderAlreadyAttached is returned when an order already linked to a
	// master order is linked again.
	ErrOrderAlreadyAttached = errors.New("order is already attached to a master order")
)

// ShipmentInfo records how the supplier shipped the goods.
type ShipmentInfo struct {
	carrier        string
	trackingNumber string
	proofKey       string
	shippedAt      time.Time
}

// NewShipmentInfo creates shipment details. The proof-of-shipment document
// key is mandatory; carrier and tracking number are stored as provided.
func NewShipmentInfo(carrier, trackingNumber, proofKey string, shippedAt time.Time) (ShipmentInfo, error) {
	if proofKey == "" {
		return ShipmentInfo{}, errs.NewValueIsRequiredError("shipment proof document")
	}

	return ShipmentInfo{
		carrier:        carrier,
		trackingNumber: trackingNumber,
		proofKey:       proofKey,
		shippedAt:      shippedAt,
	}, nil
}

// Carrier returns the carrier name.
func (s ShipmentInfo) Carrier() string { return s.carrier }

// TrackingNumber returns the carrier tracking number.
func (s ShipmentInfo) TrackingNumber() string { return s.trackingNumber }

// ProofKey returns the proof-of-shipment document reference.
func (s ShipmentInfo) ProofKey() string { return s.proofKey }

// ShippedAt returns when the transition to Shipped was recorded.
func (s ShipmentInfo) ShippedAt() time.Time { return s.shippedAt }

// ReceptionInfo records the station's acceptance of the delivery.
type ReceptionInfo struct {
	proofKey   string
	receivedAt time.Time
}

// NewReceptionInfo creates reception details. The signed proof-of-reception
// document key is mandatory.
func NewReceptionInfo(proofKey string, receivedAt time.Time) (ReceptionInfo, error) {
	if proofKey == "" {
		return ReceptionInfo{}, errs.NewValueIsRequiredError("reception proof document")
	}

	return ReceptionInfo{proofKey: proofKey, receivedAt: receivedAt}, nil
}

// ProofKey returns the signed proof-of-reception document reference.
func (r ReceptionInfo) ProofKey() string { return r.proofKey }

// ReceivedAt returns when the transition to Received was recorded.
func (r ReceptionInfo) ReceivedAt() time.Time { return r.receivedAt }

// NonConformity is a discrepancy between what was ordered and what was
// delivered: a description, the quantity affected, and photo document
// references backing the claim.
type NonConformity struct {
	description string
	quantity    int
	photoKeys   []string
}

// NewNonConformity creates a validated non-conformity report.
func NewNonConformity(description string, quantity int, photoKeys []string) (NonConformity, error) {
	if description == "" {
		return NonConformity{}, errs.NewValueIsRequiredError("non-conformity description")
	}
	if quantity <= 0 {
		return NonConformity{}, errs.NewValueIsInvalidErrorWithCause("non-conformity quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return NonConformity{description: description, quantity: quantity, photoKeys: photoKeys}, nil
}

// Description returns what is wrong with the delivery.
func (n NonConformity) Description() string { return n.description }

// Quantity returns how many units are affected.
func (n NonConformity) Quantity() int { return n.quantity }

// PhotoKeys returns the photo document references, possibly empty.
func (n NonConformity) PhotoKeys() []string { return n.photoKeys }

// HistoryEntry is one step of the order's status log.
type HistoryEntry struct {
	Status  Status
	At      time.Time
	ActorID kernel.UUID
}

// PurchaseOrder is the supplier-scoped order aggregate.
//
// Invariants:
//   - total equals the sum of line subtotals computed at creation
//   - status only moves forward through the chain defined in status.go,
//     with Archived as the only escape hatch
//   - the history log is append-only and non-decreasing in status, except
//     for a terminal Archived entry
//   - shipment, reception, and non-conformity state is written only by
//     Transition and ReportNonConformity
type PurchaseOrder struct {
	id            kernel.UUID
	orderNumber   string
	supplierID    kernel.UUID
	stationID     kernel.UUID
	masterOrderID *kernel.UUID
	lines         []Line
	total         decimal.Decimal
	status        Status
	shipment      *ShipmentInfo
	reception     *ReceptionInfo

	// nonConformities holds discrepancies reported with the reception;
	// lateNonConformities holds those raised after the fact.
	nonConformities     []NonConformity
	lateNonConformities []NonConformity

	history []HistoryEntry

	// version backs optimistic locking in the repository; it is opaque
	// to the domain logic.
	version int64

	isConstructed bool
}

// NewPurchaseOrder creates an order in Registered status with a freshly
// computed total and an initial history entry attributed to createdBy.
func NewPurchaseOrder(
	id kernel.UUID,
	orderNumber string,
	supplierID, stationID kernel.UUID,
	lines []Line,
	createdBy kernel.UUID,
) (*PurchaseOrder, error) {
	if err := errors.Join(
		id.Validate(),
		supplierID.Validate(),
		stationID.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("order lines")
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	return &PurchaseOrder{
		id:          id,
		orderNumber: orderNumber,
		supplierID:  supplierID,
		stationID:   stationID,
		lines:       lines,
		total:       total,
		status:      StatusRegistered,
		history: []HistoryEntry{
			{Status: StatusRegistered, At: time.Now().UTC(), ActorID: createdBy},
		},
		isConstructed: true,
	}, nil
}

// RestorePurchaseOrder reconstructs an order from persistence, including
// state that only exists after lifecycle transitions.
// Used only by repository implementations.
func RestorePurchaseOrder(
	id kernel.UUID,
	orderNumber string,
	supplierID, stationID kernel.UUID,
	masterOrderID *kernel.UUID,
	lines []Line,
	total decimal.Decimal,
	status Status,
	shipment *ShipmentInfo,
	reception *ReceptionInfo,
	nonConformities, lateNonConformities []NonConformity,
	history []HistoryEntry,
	version int64,
) (*PurchaseOrder, error) {
	if err := errors.Join(
		id.Validate(),
		supplierID.Validate(),
		stationID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	return &PurchaseOrder{
		id:                  id,
		orderNumber:         orderNumber,
		supplierID:          supplierID,
		stationID:           stationID,
		masterOrderID:       masterOrderID,
		lines:               lines,
		total:               total,
		status:              status,
		shipment:            shipment,
		reception:           reception,
		nonConformities:     nonConformities,
		lateNonConformities: lateNonConformities,
		history:             history,
		version:             version,
		isConstructed:       true,
	}, nil
}

// Validate ensures the PurchaseOrder instance was properly constructed.
func (o *PurchaseOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *PurchaseOrder) IsEqual(other *PurchaseOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *PurchaseOrder) ID() kernel.UUID { return o.id }

// OrderNumber returns the generated purchase-order number.
func (o *PurchaseOrder) OrderNumber() string { return o.orderNumber }

// SupplierID returns the supplier fulfilling this order.
func (o *PurchaseOrder) SupplierID() kernel.UUID { return o.supplierID }

// StationID returns the station that placed this order.
func (o *PurchaseOrder) StationID() kernel.UUID { return o.stationID }

// MasterOrderID returns the owning master order, or nil when detached.
func (o *PurchaseOrder) MasterOrderID() *kernel.UUID { return o.masterOrderID }

// Lines returns the order lines in their checkout order.
func (o *PurchaseOrder) Lines() []Line { return o.lines }

// Total returns the order total excluding tax, fixed at creation.
func (o *PurchaseOrder) Total() decimal.Decimal { return o.total }

// Status returns the order's current lifecycle status.
func (o *PurchaseOrder) Status() Status { return o.status }

// Shipment returns shipment details, or nil before the order is Shipped.
func (o *PurchaseOrder) Shipment() *ShipmentInfo { return o.shipment }

// Reception returns reception details, or nil before the order is Received.
func (o *PurchaseOrder) Reception() *ReceptionInfo { return o.reception }

// NonConformities returns discrepancies reported at reception time.
func (o *PurchaseOrder) NonConformities() []NonConformity { return o.nonConformities }

// LateNonConformities returns discrepancies reported after reception.
func (o *PurchaseOrder) LateNonConformities() []NonConformity { return o.lateNonConformities }

// History returns the append-only status log, oldest first.
func (o *PurchaseOrder) History() []HistoryEntry { return o.history }

// Version returns the optimistic-locking version loaded from persistence.
func (o *PurchaseOrder) Version() int64 { return o.version }

// AttachToMaster links the order to the master order created alongside it.
// The link is set once, at checkout, and never rewritten.
func (o *PurchaseOrder) AttachToMaster(masterOrderID kernel.UUID) error {
	if o.masterOrderID != nil {
		return ErrOrderAlreadyAttached
	}
	if err := masterOrderID.Validate(); err != nil {
		return err
	}

	o.masterOrderID = &masterOrderID
	return nil
}

// DocumentKeys collects every document reference the order holds: the
// shipment proof, the signed reception proof, and every non-conformity
// photo from both the reception-time and after-the-fact lists.
func (o *PurchaseOrder) DocumentKeys() []string {
	var keys []string
	if o.shipment != nil {
		keys = append(keys, o.shipment.proofKey)
	}
	if o.reception != nil {
		keys = append(keys, o.reception.proofKey)
	}
	for _, nc := range o.nonConformities {
		keys = append(keys, nc.photoKeys...)
	}
	for _, nc := range o.lateNonConformities {
		keys = append(keys, nc.photoKeys...)
	}
	return keys
}

// CancelableBy reports whether the actor may cancel this order.
// Only orders still in Registered can be cancelled, by the owning station
// or by back office.
func (o *PurchaseOrder) CancelableBy(actor kernel.Actor) error {
	if o.status != StatusRegistered {
		return errs.NewStatusConflictError(
			fmt.Sprintf("order is %s, only Registered orders can be cancelled", o.status))
	}

	switch actor.Role() {
	case kernel.RoleStation:
		if !actor.ActsFor(o.stationID) {
			return errs.NewNotAuthorizedError("actor does not act for the station of this order")
		}
	case kernel.RoleManager, kernel.RoleHandler, kernel.RoleAdmin:
	default:
		return errs.NewNotAuthorizedError(
			fmt.Sprintf("role %s cannot cancel orders", actor.Role()))
	}

	return nil
}

// ReportNonConformity records a discrepancy raised after reception.
// Allowed for the owning station once the order has been Received and
// until it is Archived.
func (o *PurchaseOrder) ReportNonConformity(actor kernel.Actor, nc NonConformity) error {
	if o.status.Before(StatusReceived) {
		return errs.NewStatusConflictError(
			fmt.Sprintf("order is %s, non-conformities can be reported from Received on", o.status))
	}
	if o.status.IsTerminal() {
		return errs.NewStatusConflictError("order is Archived")
	}
	if actor.Role() != kernel.RoleStation || !actor.ActsFor(o.stationID) {
		return errs.NewNotAuthorizedError("only the owning station can report non-conformities")
	}

	o.lateNonConformities = append(o.lateNonConformities, nc)
	return nil
}
