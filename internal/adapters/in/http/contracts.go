package http

import "time"

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddCartLineRequest adds one line to the station's draft cart.
type AddCartLineRequest struct {
	ProductID           string    `json:"productId"`
	SupplierID          string    `json:"supplierId"`
	Quantity            int       `json:"quantity"`
	DesiredDeliveryDate time.Time `json:"desiredDeliveryDate"`
}

// CheckoutResponse reports the outcome of a cart checkout.
type CheckoutResponse struct {
	MasterOrderID string                 `json:"masterOrderId"`
	Reference     string                 `json:"reference"`
	Orders        []CheckoutOrderSummary `json:"orders"`
	SkippedLines  []SkippedLineSummary   `json:"skippedLines,omitempty"`
}

// CheckoutOrderSummary is one purchase order created by a checkout.
type CheckoutOrderSummary struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	SupplierID  string `json:"supplierId"`
	Total       string `json:"total"`
}

// SkippedLineSummary is one cart line left out of a checkout because no
// supplier terms could be resolved for it.
type SkippedLineSummary struct {
	ProductID  string `json:"productId"`
	SupplierID string `json:"supplierId"`
}

// ChangeOrderStatusRequest moves an order to a new status. Only the fields
// relevant to the requested status need to be set.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`

	// Confirmation
	ConfirmedDeliveryDates map[string]time.Time `json:"confirmedDeliveryDates,omitempty"`

	// Shipment
	Carrier          string `json:"carrier,omitempty"`
	TrackingNumber   string `json:"trackingNumber,omitempty"`
	ShipmentProofKey string `json:"shipmentProofKey,omitempty"`

	// Reception
	ReceptionProofKey  string                  `json:"receptionProofKey,omitempty"`
	ReceivedQuantities map[string]int          `json:"receivedQuantities,omitempty"`
	NonConformities    []NonConformityRequest  `json:"nonConformities,omitempty"`
}

// NonConformityRequest is one reported discrepancy.
type NonConformityRequest struct {
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	PhotoKeys   []string `json:"photoKeys,omitempty"`
}

// MasterOrderResponse is one master order in the listing.
type MasterOrderResponse struct {
	ID        string               `json:"id"`
	Reference string               `json:"reference"`
	StationID string               `json:"stationId"`
	Status    string               `json:"status"`
	Total     string               `json:"total"`
	CreatedAt time.Time            `json:"createdAt"`
	Orders    []OrderChildResponse `json:"orders"`
}

// OrderChildResponse is one purchase order summarized under its master.
type OrderChildResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	SupplierID  string `json:"supplierId"`
	Status      string `json:"status"`
	Total       string `json:"total"`
}

// OrderDetailResponse is the full read model of one purchase order.
type OrderDetailResponse struct {
	ID              string                  `json:"id"`
	OrderNumber     string                  `json:"orderNumber"`
	SupplierID      string                  `json:"supplierId"`
	StationID       string                  `json:"stationId"`
	MasterOrderID   *string                 `json:"masterOrderId,omitempty"`
	Status          string                  `json:"status"`
	Total           string                  `json:"total"`
	Lines           []OrderLineResponse     `json:"lines"`
	Shipment        *ShipmentResponse       `json:"shipment,omitempty"`
	Reception       *ReceptionResponse      `json:"reception,omitempty"`
	NonConformities []NonConformityResponse `json:"nonConformities,omitempty"`
	History         []HistoryEntryResponse  `json:"history"`
}

// OrderLineResponse is one line of the order detail.
type OrderLineResponse struct {
	ProductID             string     `json:"productId"`
	Quantity              int        `json:"quantity"`
	UnitPrice             string     `json:"unitPrice"`
	PackagingUnit         string     `json:"packagingUnit"`
	QuantityPerPackage    int        `json:"quantityPerPackage"`
	DesiredDeliveryDate   time.Time  `json:"desiredDeliveryDate"`
	ConfirmedDeliveryDate *time.Time `json:"confirmedDeliveryDate,omitempty"`
	QuantityReceived      int        `json:"quantityReceived"`
}

// ShipmentResponse describes the recorded shipment.
type ShipmentResponse struct {
	Carrier        string    `json:"carrier,omitempty"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	ProofKey       string    `json:"proofKey"`
	ShippedAt      time.Time `json:"shippedAt"`
}

// ReceptionResponse describes the recorded reception.
type ReceptionResponse struct {
	ProofKey   string    `json:"proofKey"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// NonConformityResponse is one reported discrepancy.
type NonConformityResponse struct {
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	PhotoKeys   []string `json:"photoKeys,omitempty"`
	AtReception bool     `json:"atReception"`
}

// HistoryEntryResponse is one step of the order's status log.
type HistoryEntryResponse struct {
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
	ActorID string    `json:"actorId"`
}

// UploadDocumentResponse returns the storage key of an uploaded document.
type UploadDocumentResponse struct {
	Key string `json:"key"`
}
