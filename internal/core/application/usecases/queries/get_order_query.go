package queries

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full detail of one purchase order: lines,
// shipment and reception documents, non-conformities and the status history.
// Access is checked against the actor in the handler, where the order's
// parties are known.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates an order detail query.
func NewGetOrderQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	q := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrderID(orderID),
		q.setActor(actor),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the requesting actor.
func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

// GetOrderQueryResponse is the full read model of one purchase order.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	SupplierID    kernel.UUID
	StationID     kernel.UUID
	MasterOrderID *kernel.UUID
	Status        string
	Total         decimal.Decimal
	Lines         []OrderLineResponse
	Shipment      *ShipmentResponse
	Reception     *ReceptionResponse

	// NonConformities includes both the discrepancies reported with the
	// reception and those raised afterwards, flagged by AtReception.
	NonConformities []NonConformityResponse
	History         []HistoryEntryResponse
}

// OrderLineResponse is one line of the order detail.
type OrderLineResponse struct {
	ProductID             kernel.UUID
	Quantity              int
	UnitPrice             decimal.Decimal
	PackagingUnit         string
	QuantityPerPackage    int
	DesiredDeliveryDate   time.Time
	ConfirmedDeliveryDate *time.Time
	QuantityReceived      int
}

// ShipmentResponse describes the shipment recorded at the Shipped transition.
type ShipmentResponse struct {
	Carrier        string
	TrackingNumber string
	ProofKey       string
	ShippedAt      time.Time
}

// ReceptionResponse describes the reception recorded at the Received transition.
type ReceptionResponse struct {
	ProofKey   string
	ReceivedAt time.Time
}

// NonConformityResponse is one reported discrepancy.
type NonConformityResponse struct {
	Description string
	Quantity    int
	PhotoKeys   []string
	AtReception bool
}

// HistoryEntryResponse is one step of the order's status log.
type HistoryEntryResponse struct {
	Status  string
	At      time.Time
	ActorID kernel.UUID
}
