package queries

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetMasterOrdersQueryHandler retrieves master orders with their child-order
// summaries from the database.
//
// The stored master status is a cache over the children. The handler treats
// the child statuses as the source of truth: whenever the cached value
// disagrees with the status derived from the children, the row is rewritten
// before the response is built, so a reader always sees a consistent list
// and drift repairs itself on the next read.
type GetMasterOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetMasterOrdersQueryHandler creates a handler for master-order listing queries.
// Requires a GORM database connection for query execution.
func NewGetMasterOrdersQueryHandler(db *gorm.DB) GetMasterOrdersQueryHandler {
	return GetMasterOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the master orders visible to the
// actor, newest first, each with its children sorted by order number.
func (h GetMasterOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetMasterOrdersQuery,
) ([]GetMasterOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	masters, err := h.fetchMasters(ctx, query.Actor())
	if err != nil {
		return nil, err
	}

	responses := make([]GetMasterOrdersQueryResponse, 0, len(masters))
	for _, master := range masters {
		children, childErr := h.fetchChildren(ctx, master.ID)
		if childErr != nil {
			return nil, childErr
		}

		status, healErr := h.healStatus(ctx, master, children)
		if healErr != nil {
			return nil, healErr
		}

		masterID, idErr := kernel.UUIDFromBytes(master.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		stationID, idErr := kernel.UUIDFromBytes(master.StationID[:])
		if idErr != nil {
			return nil, idErr
		}

		responses = append(responses, GetMasterOrdersQueryResponse{
			ID:        masterID,
			Reference: master.Reference,
			StationID: stationID,
			Status:    status.String(),
			Total:     master.Total,
			CreatedAt: master.CreatedAt,
			Orders:    children,
		})
	}

	return responses, nil
}

// masterRow mirrors the columns read from master_orders.
type masterRow struct {
	ID        uuid.UUID
	Reference string
	StationID uuid.UUID
	Status    int
	Total     decimal.Decimal
	CreatedAt time.Time
}

func (h GetMasterOrdersQueryHandler) fetchMasters(ctx context.Context, actor kernel.Actor) ([]masterRow, error) {
	const baseQuery = `
		SELECT
			id,
			reference,
			station_id,
			status,
			total,
			created_at
		FROM master_orders
	`

	db := h.db.WithContext(ctx)
	var masters []masterRow
	var err error

	if actor.Role() == kernel.RoleStation {
		err = db.Raw(baseQuery+`
			WHERE station_id = ?
			ORDER BY created_at DESC
		`, actor.EntityID().Bytes()).Scan(&masters).Error
	} else {
		err = db.Raw(baseQuery + `
			ORDER BY created_at DESC
		`).Scan(&masters).Error
	}
	if err != nil {
		return nil, err
	}

	return masters, nil
}

func (h GetMasterOrdersQueryHandler) fetchChildren(
	ctx context.Context,
	masterID uuid.UUID,
) ([]MasterOrderChildResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			supplier_id,
			status,
			total
		FROM orders
		WHERE master_order_id = ?
		ORDER BY order_number
	`, masterID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := make([]MasterOrderChildResponse, 0)
	for rows.Next() {
		var id, supplierID uuid.UUID
		var orderNumber string
		var status int
		var total decimal.Decimal

		if err = rows.Scan(&id, &orderNumber, &supplierID, &status, &total); err != nil {
			return nil, err
		}

		childID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		childSupplierID, idErr := kernel.UUIDFromBytes(supplierID[:])
		if idErr != nil {
			return nil, idErr
		}

		children = append(children, MasterOrderChildResponse{
			ID:          childID,
			OrderNumber: orderNumber,
			SupplierID:  childSupplierID,
			Status:      order.Status(status).String(),
			Total:       total,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return children, nil
}

// healStatus derives the master status from the child rows and rewrites the
// cached column when it has drifted. A master without children keeps its
// stored status; deletion of the last child removes the master, so the case
// only occurs mid-transaction and is not worth failing a read over.
func (h GetMasterOrdersQueryHandler) healStatus(
	ctx context.Context,
	master masterRow,
	children []MasterOrderChildResponse,
) (order.Status, error) {
	stored := order.Status(master.Status)
	if len(children) == 0 {
		return stored, nil
	}

	statuses := make([]order.Status, 0, len(children))
	for _, child := range children {
		status, err := order.StatusFromString(child.Status)
		if err != nil {
			return order.StatusUnknown, err
		}
		statuses = append(statuses, status)
	}

	derived, err := masterorder.AggregateStatus(statuses)
	if err != nil {
		return order.StatusUnknown, err
	}
	if derived == stored {
		return stored, nil
	}

	err = h.db.WithContext(ctx).Exec(`
		UPDATE master_orders
		SET status = ?
		WHERE id = ?
	`, int(derived), master.ID).Error
	if err != nil {
		return order.StatusUnknown, err
	}

	return derived, nil
}
