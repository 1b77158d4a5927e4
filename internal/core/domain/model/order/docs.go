// Package order implements the purchase-order aggregate and its delivery
// lifecycle. A purchase order is supplier-scoped: it is materialized from one
// station's cart at checkout, carries price and packaging terms frozen at that
// moment, and then advances through a fixed status chain under role-gated
// transitions. All lifecycle writes flow through PurchaseOrder.Transition;
// no other code path touches status, shipment, or reception state.
package order
