package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the full order read model from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, err := NewGetOrderQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order detail. Suppliers and
// stations only see orders they are party to; managers, handlers and admins
// see every order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.fetchOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err := authorizeOrderAccess(query.Actor(), response); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Lines, err = h.fetchLines(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.NonConformities, err = h.fetchNonConformities(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.History, err = h.fetchHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func authorizeOrderAccess(actor kernel.Actor, response GetOrderQueryResponse) error {
	switch actor.Role() {
	case kernel.RoleSupplier:
		if !actor.ActsFor(response.SupplierID) {
			return errs.NewNotAuthorizedError("order belongs to another supplier")
		}
	case kernel.RoleStation:
		if !actor.ActsFor(response.StationID) {
			return errs.NewNotAuthorizedError("order belongs to another station")
		}
	default:
	}

	return nil
}

func (h GetOrderQueryHandler) fetchOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			supplier_id,
			station_id,
			master_order_id,
			status,
			total,
			shipment_carrier,
			shipment_tracking_number,
			shipment_proof_key,
			shipment_shipped_at,
			reception_proof_key,
			reception_received_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		id, supplierID, stationID                     uuid.UUID
		masterOrderID                                 *uuid.UUID
		orderNumber                                   string
		status                                        int
		total                                         decimal.Decimal
		carrier, trackingNumber, shipProof, recvProof sql.NullString
		shippedAt, receivedAt                         sql.NullTime
	)

	err := row.Scan(
		&id, &orderNumber, &supplierID, &stationID, &masterOrderID, &status, &total,
		&carrier, &trackingNumber, &shipProof, &shippedAt,
		&recvProof, &receivedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		OrderNumber: orderNumber,
		Status:      order.Status(status).String(),
		Total:       total,
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.SupplierID, err = kernel.UUIDFromBytes(supplierID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.StationID, err = kernel.UUIDFromBytes(stationID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if masterOrderID != nil {
		masterID, idErr := kernel.UUIDFromBytes((*masterOrderID)[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		response.MasterOrderID = &masterID
	}

	if shipProof.Valid {
		response.Shipment = &ShipmentResponse{
			Carrier:        carrier.String,
			TrackingNumber: trackingNumber.String,
			ProofKey:       shipProof.String,
			ShippedAt:      shippedAt.Time,
		}
	}
	if recvProof.Valid {
		response.Reception = &ReceptionResponse{
			ProofKey:   recvProof.String,
			ReceivedAt: receivedAt.Time,
		}
	}

	return response, nil
}

func (h GetOrderQueryHandler) fetchLines(ctx context.Context, orderID kernel.UUID) ([]OrderLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity,
			unit_price,
			packaging_unit,
			quantity_per_package,
			desired_delivery_date,
			confirmed_delivery_date,
			quantity_received
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)
	for rows.Next() {
		var (
			productID uuid.UUID
			line      OrderLineResponse
			confirmed sql.NullTime
		)

		err = rows.Scan(
			&productID,
			&line.Quantity,
			&line.UnitPrice,
			&line.PackagingUnit,
			&line.QuantityPerPackage,
			&line.DesiredDeliveryDate,
			&confirmed,
			&line.QuantityReceived,
		)
		if err != nil {
			return nil, err
		}

		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if confirmed.Valid {
			confirmedAt := confirmed.Time
			line.ConfirmedDeliveryDate = &confirmedAt
		}

		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (h GetOrderQueryHandler) fetchNonConformities(
	ctx context.Context,
	orderID kernel.UUID,
) ([]NonConformityResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			description,
			quantity,
			photo_keys,
			at_reception
		FROM non_conformities
		WHERE order_id = ?
		ORDER BY at_reception DESC, position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nonConformities := make([]NonConformityResponse, 0)
	for rows.Next() {
		var nc NonConformityResponse
		var photoKeys pq.StringArray

		if err = rows.Scan(&nc.Description, &nc.Quantity, &photoKeys, &nc.AtReception); err != nil {
			return nil, err
		}

		nc.PhotoKeys = []string(photoKeys)
		nonConformities = append(nonConformities, nc)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return nonConformities, nil
}

func (h GetOrderQueryHandler) fetchHistory(ctx context.Context, orderID kernel.UUID) ([]HistoryEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			at,
			actor_id
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryEntryResponse, 0)
	for rows.Next() {
		var status int
		var at time.Time
		var actorID uuid.UUID

		if err = rows.Scan(&status, &at, &actorID); err != nil {
			return nil, err
		}

		entry := HistoryEntryResponse{
			Status: order.Status(status).String(),
			At:     at,
		}
		if entry.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}

		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
