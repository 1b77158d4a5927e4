package http

import (
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor headers set by the authenticating gateway in front of this service.
// The service trusts them as resolved identity and only enforces what the
// resolved actor may do.
const (
	HeaderActorID     = "X-Actor-Id"
	HeaderActorRole   = "X-Actor-Role"
	HeaderActorEntity = "X-Actor-Entity"
)

// actorFromRequest builds the acting principal from the identity headers.
// Entity-scoped roles (Station, Supplier) must also carry the entity header.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	rawID := ctx.Request().Header.Get(HeaderActorID)
	if rawID == "" {
		return kernel.Actor{}, errs.NewValueIsRequiredError(HeaderActorID)
	}
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Actor{}, err
	}

	rawRole := ctx.Request().Header.Get(HeaderActorRole)
	if rawRole == "" {
		return kernel.Actor{}, errs.NewValueIsRequiredError(HeaderActorRole)
	}
	role, err := kernel.RoleFromString(rawRole)
	if err != nil {
		return kernel.Actor{}, err
	}

	var entityID *kernel.UUID
	if rawEntity := ctx.Request().Header.Get(HeaderActorEntity); rawEntity != "" {
		entity, entityErr := kernel.UUIDFromString(rawEntity)
		if entityErr != nil {
			return kernel.Actor{}, entityErr
		}
		entityID = &entity
	}

	return kernel.NewActor(id, role, entityID)
}
