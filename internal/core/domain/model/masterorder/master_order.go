package masterorder

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrMasterOrderIsNotConstructed is returned when a MasterOrder instance
	// was not created through NewMasterOrder or RestoreMasterOrder.
	ErrMasterOrderIsNotConstructed = errors.New(
		"MasterOrder must be created via NewMasterOrder constructor")

	// ErrOrderIsNotPartOfMaster is returned when detaching an order the
	// master order does not own.
	ErrOrderIsNotPartOfMaster = errors.New("order is not part of this master order")
)

// MasterOrder groups the purchase orders produced by one cart checkout under
// a single station-facing reference. The status and total fields are caches
// over the children, refreshed explicitly.
type MasterOrder struct {
	id        kernel.UUID
	reference string
	stationID kernel.UUID
	orderIDs  []kernel.UUID
	status    order.Status
	total     decimal.Decimal
	createdBy kernel.UUID
	createdAt time.Time

	isConstructed bool
}

// NewMasterOrder creates a master order over freshly checked-out purchase
// orders. The children must be non-empty; the total and status caches are
// derived from them.
func NewMasterOrder(
	id kernel.UUID,
	reference string,
	stationID kernel.UUID,
	orders []*order.PurchaseOrder,
	createdBy kernel.UUID,
) (*MasterOrder, error) {
	if err := errors.Join(
		id.Validate(),
		stationID.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("master order reference")
	}
	if len(orders) == 0 {
		return nil, errs.NewValueIsRequiredError("orders")
	}

	orderIDs := make([]kernel.UUID, 0, len(orders))
	statuses := make([]order.Status, 0, len(orders))
	total := decimal.Zero
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		orderIDs = append(orderIDs, o.ID())
		statuses = append(statuses, o.Status())
		total = total.Add(o.Total())
	}

	status, err := AggregateStatus(statuses)
	if err != nil {
		return nil, err
	}

	return &MasterOrder{
		id:            id,
		reference:     reference,
		stationID:     stationID,
		orderIDs:      orderIDs,
		status:        status,
		total:         total,
		createdBy:     createdBy,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMasterOrder reconstructs a master order from persistence.
// Used only by repository implementations.
func RestoreMasterOrder(
	id kernel.UUID,
	reference string,
	stationID kernel.UUID,
	orderIDs []kernel.UUID,
	status order.Status,
	total decimal.Decimal,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*MasterOrder, error) {
	if err := errors.Join(
		id.Validate(),
		stationID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("master order reference")
	}

	return &MasterOrder{
		id:            id,
		reference:     reference,
		stationID:     stationID,
		orderIDs:      orderIDs,
		status:        status,
		total:         total,
		createdBy:     createdBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the MasterOrder instance was properly constructed.
func (m *MasterOrder) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMasterOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two master orders by their unique identifiers.
func (m *MasterOrder) IsEqual(other *MasterOrder) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the master order's unique identifier.
func (m *MasterOrder) ID() kernel.UUID { return m.id }

// Reference returns the generated master-order reference.
func (m *MasterOrder) Reference() string { return m.reference }

// StationID returns the station this master order belongs to.
func (m *MasterOrder) StationID() kernel.UUID { return m.stationID }

// OrderIDs returns the identifiers of the child purchase orders.
func (m *MasterOrder) OrderIDs() []kernel.UUID { return m.orderIDs }

// Status returns the cached aggregate status.
func (m *MasterOrder) Status() order.Status { return m.status }

// Total returns the cached sum of the child order totals.
func (m *MasterOrder) Total() decimal.Decimal { return m.total }

// CreatedBy returns who performed the checkout.
func (m *MasterOrder) CreatedBy() kernel.UUID { return m.createdBy }

// CreatedAt returns when the checkout happened.
func (m *MasterOrder) CreatedAt() time.Time { return m.createdAt }

// IsEmpty reports whether the master order has no children left.
func (m *MasterOrder) IsEmpty() bool { return len(m.orderIDs) == 0 }

// RefreshStatus recomputes the cached aggregate status from the given child
// statuses and reports whether the cache changed.
func (m *MasterOrder) RefreshStatus(children []order.Status) (bool, error) {
	derived, err := AggregateStatus(children)
	if err != nil {
		return false, err
	}

	if derived == m.status {
		return false, nil
	}
	m.status = derived
	return true, nil
}

// DetachOrder removes a cancelled child from the master order and subtracts
// its total. The caller deletes the master order when it becomes empty.
func (m *MasterOrder) DetachOrder(orderID kernel.UUID, orderTotal decimal.Decimal) error {
	for i, id := range m.orderIDs {
		if id.IsEqual(orderID) {
			m.orderIDs = append(m.orderIDs[:i], m.orderIDs[i+1:]...)
			m.total = m.total.Sub(orderTotal)
			return nil
		}
	}
	return ErrOrderIsNotPartOfMaster
}
