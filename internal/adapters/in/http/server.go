// Package http exposes the procurement use cases over a REST surface.
// Identity arrives pre-resolved in gateway headers; every handler builds the
// acting principal from them and defers authorization to the domain.
package http

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addCartLineHandler       commands.AddCartLineCommandHandler
	checkoutCartHandler      commands.CheckoutCartCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	deleteMasterOrderHandler commands.DeleteMasterOrderCommandHandler

	// Query handlers
	getMasterOrdersHandler queries.GetMasterOrdersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler

	storage ports.DocumentStorage
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	addCartLineHandler commands.AddCartLineCommandHandler,
	checkoutCartHandler commands.CheckoutCartCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	deleteMasterOrderHandler commands.DeleteMasterOrderCommandHandler,
	getMasterOrdersHandler queries.GetMasterOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	storage ports.DocumentStorage,
) *Server {
	return &Server{
		addCartLineHandler:       addCartLineHandler,
		checkoutCartHandler:      checkoutCartHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		deleteMasterOrderHandler: deleteMasterOrderHandler,
		getMasterOrdersHandler:   getMasterOrdersHandler,
		getOrderHandler:          getOrderHandler,
		storage:                  storage,
	}
}

// RegisterRoutes wires the API routes into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/carts/lines", s.AddCartLine)
	api.POST("/carts/checkout", s.CheckoutCart)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.DELETE("/orders/:id", s.CancelOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/master-orders", s.GetMasterOrders)
	api.DELETE("/master-orders/:id", s.DeleteMasterOrder)
	api.POST("/documents", s.UploadDocument)

	e.GET("/health", s.Health)
}

// AddCartLine handles POST /api/v1/carts/lines - upserts a line into the
// station's draft cart.
func (s *Server) AddCartLine(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request AddCartLineRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return respondError(ctx, err)
	}
	supplierID, err := kernel.UUIDFromString(request.SupplierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddCartLineCommand(
		actor, productID, supplierID, request.Quantity, request.DesiredDeliveryDate)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.addCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CheckoutCart handles POST /api/v1/carts/checkout - consolidates the
// station's draft cart into purchase orders under a new master order.
func (s *Server) CheckoutCart(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCheckoutCartCommand(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.checkoutCartHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := CheckoutResponse{
		MasterOrderID: result.MasterOrder.ID().String(),
		Reference:     result.MasterOrder.Reference(),
		Orders:        make([]CheckoutOrderSummary, 0, len(result.Orders)),
	}
	for _, created := range result.Orders {
		response.Orders = append(response.Orders, CheckoutOrderSummary{
			ID:          created.ID().String(),
			OrderNumber: created.OrderNumber(),
			SupplierID:  created.SupplierID().String(),
			Total:       created.Total().StringFixed(2),
		})
	}
	for _, skipped := range result.SkippedLines {
		response.SkippedLines = append(response.SkippedLines, SkippedLineSummary{
			ProductID:  skipped.ProductID().String(),
			SupplierID: skipped.SupplierID().String(),
		})
	}

	return ctx.JSON(http.StatusCreated, response)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// along its lifecycle and returns the updated detail.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var request ChangeOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	payload, err := transitionPayloadFromRequest(request)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actor, payload)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondOrderDetail(ctx, orderID, actor, http.StatusOK)
}

// CancelOrder handles DELETE /api/v1/orders/:id - removes an order still in
// its initial status.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOrder handles GET /api/v1/orders/:id - returns the full order detail.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	return s.respondOrderDetail(ctx, orderID, actor, http.StatusOK)
}

// GetMasterOrders handles GET /api/v1/master-orders - lists the master
// orders visible to the actor.
func (s *Server) GetMasterOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetMasterOrdersQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	masters, err := s.getMasterOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]MasterOrderResponse, 0, len(masters))
	for _, master := range masters {
		children := make([]OrderChildResponse, 0, len(master.Orders))
		for _, child := range master.Orders {
			children = append(children, OrderChildResponse{
				ID:          child.ID.String(),
				OrderNumber: child.OrderNumber,
				SupplierID:  child.SupplierID.String(),
				Status:      child.Status,
				Total:       child.Total.StringFixed(2),
			})
		}

		response = append(response, MasterOrderResponse{
			ID:        master.ID.String(),
			Reference: master.Reference,
			StationID: master.StationID.String(),
			Status:    master.Status,
			Total:     master.Total.StringFixed(2),
			CreatedAt: master.CreatedAt,
			Orders:    children,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteMasterOrder handles DELETE /api/v1/master-orders/:id - removes a
// master order, its child orders and their stored documents.
func (s *Server) DeleteMasterOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	masterOrderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteMasterOrderCommand(masterOrderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteMasterOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// UploadDocument handles POST /api/v1/documents - stores a document (proof
// of shipment or reception, non-conformity photo) and returns its key for
// use in later status transitions.
func (s *Server) UploadDocument(ctx echo.Context) error {
	if _, err := actorFromRequest(ctx); err != nil {
		return respondError(ctx, err)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "file form field is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(ctx, err)
	}
	defer file.Close()

	key := fmt.Sprintf("documents/%s/%s", kernel.NewUUID().String(), path.Base(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	if err = s.storage.Put(ctx.Request().Context(), key, contentType, file); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, UploadDocumentResponse{Key: key})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondOrderDetail(ctx echo.Context, orderID kernel.UUID, actor kernel.Actor, status int) error {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(status, orderDetailResponse(detail))
}

func orderDetailResponse(detail queries.GetOrderQueryResponse) OrderDetailResponse {
	response := OrderDetailResponse{
		ID:          detail.ID.String(),
		OrderNumber: detail.OrderNumber,
		SupplierID:  detail.SupplierID.String(),
		StationID:   detail.StationID.String(),
		Status:      detail.Status,
		Total:       detail.Total.StringFixed(2),
		Lines:       make([]OrderLineResponse, 0, len(detail.Lines)),
		History:     make([]HistoryEntryResponse, 0, len(detail.History)),
	}
	if detail.MasterOrderID != nil {
		masterID := detail.MasterOrderID.String()
		response.MasterOrderID = &masterID
	}

	for _, line := range detail.Lines {
		response.Lines = append(response.Lines, OrderLineResponse{
			ProductID:             line.ProductID.String(),
			Quantity:              line.Quantity,
			UnitPrice:             line.UnitPrice.StringFixed(2),
			PackagingUnit:         line.PackagingUnit,
			QuantityPerPackage:    line.QuantityPerPackage,
			DesiredDeliveryDate:   line.DesiredDeliveryDate,
			ConfirmedDeliveryDate: line.ConfirmedDeliveryDate,
			QuantityReceived:      line.QuantityReceived,
		})
	}

	if detail.Shipment != nil {
		response.Shipment = &ShipmentResponse{
			Carrier:        detail.Shipment.Carrier,
			TrackingNumber: detail.Shipment.TrackingNumber,
			ProofKey:       detail.Shipment.ProofKey,
			ShippedAt:      detail.Shipment.ShippedAt,
		}
	}
	if detail.Reception != nil {
		response.Reception = &ReceptionResponse{
			ProofKey:   detail.Reception.ProofKey,
			ReceivedAt: detail.Reception.ReceivedAt,
		}
	}

	for _, nc := range detail.NonConformities {
		response.NonConformities = append(response.NonConformities, NonConformityResponse{
			Description: nc.Description,
			Quantity:    nc.Quantity,
			PhotoKeys:   nc.PhotoKeys,
			AtReception: nc.AtReception,
		})
	}

	for _, entry := range detail.History {
		response.History = append(response.History, HistoryEntryResponse{
			Status:  entry.Status,
			At:      entry.At,
			ActorID: entry.ActorID.String(),
		})
	}

	return response
}

func transitionPayloadFromRequest(request ChangeOrderStatusRequest) (order.TransitionPayload, error) {
	payload := order.TransitionPayload{
		Carrier:           request.Carrier,
		TrackingNumber:    request.TrackingNumber,
		ShipmentProofKey:  request.ShipmentProofKey,
		ReceptionProofKey: request.ReceptionProofKey,
	}

	if len(request.ConfirmedDeliveryDates) > 0 {
		payload.ConfirmedDeliveryDates = make(map[kernel.UUID]time.Time, len(request.ConfirmedDeliveryDates))
		for rawID, date := range request.ConfirmedDeliveryDates {
			productID, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return order.TransitionPayload{}, err
			}
			payload.ConfirmedDeliveryDates[productID] = date
		}
	}

	if len(request.ReceivedQuantities) > 0 {
		payload.ReceivedQuantities = make(map[kernel.UUID]int, len(request.ReceivedQuantities))
		for rawID, quantity := range request.ReceivedQuantities {
			productID, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return order.TransitionPayload{}, err
			}
			payload.ReceivedQuantities[productID] = quantity
		}
	}

	for _, nc := range request.NonConformities {
		nonConformity, err := order.NewNonConformity(nc.Description, nc.Quantity, nc.PhotoKeys)
		if err != nil {
			return order.TransitionPayload{}, err
		}
		payload.NonConformities = append(payload.NonConformities, nonConformity)
	}

	return payload, nil
}
