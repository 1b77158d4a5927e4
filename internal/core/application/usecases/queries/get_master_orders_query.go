package queries

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetMasterOrdersQueryIsNotConstructed = errors.New(
	"GetMasterOrdersQuery must be created via NewGetMasterOrdersQuery constructor",
)

// GetMasterOrdersQuery retrieves the master-order list visible to an actor.
// Station actors see their own station's master orders; managers, handlers
// and admins see all of them.
//
// Example:
//
//	query, err := NewGetMasterOrdersQuery(actor)
//	if err != nil {
//	    return err
//	}
//
//	masters, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list master orders: %w", err)
//	}
type GetMasterOrdersQuery struct { //nolint:recvcheck //using for validation
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetMasterOrdersQuery creates a master-order listing query for an actor.
// Supplier actors are rejected: master orders group a station's purchasing
// and are never exposed supplier-side.
func NewGetMasterOrdersQuery(actor kernel.Actor) (GetMasterOrdersQuery, error) {
	q := GetMasterOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setActor(actor); err != nil {
		return GetMasterOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMasterOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMasterOrdersQueryIsNotConstructed)
}

// Actor returns the requesting actor.
func (q GetMasterOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q *GetMasterOrdersQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() == kernel.RoleSupplier {
		return errs.NewNotAuthorizedError("suppliers cannot list master orders")
	}

	q.actor = actor
	return nil
}

// GetMasterOrdersQueryResponse is one master order in the listing, with a
// summary row per child order.
type GetMasterOrdersQueryResponse struct {
	ID        kernel.UUID
	Reference string
	StationID kernel.UUID
	Status    string
	Total     decimal.Decimal
	CreatedAt time.Time
	Orders    []MasterOrderChildResponse
}

// MasterOrderChildResponse summarizes one purchase order under a master.
type MasterOrderChildResponse struct {
	ID          kernel.UUID
	OrderNumber string
	SupplierID  kernel.UUID
	Status      string
	Total       decimal.Decimal
}
