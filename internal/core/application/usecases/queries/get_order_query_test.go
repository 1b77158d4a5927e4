package queries_test

import (
	"testing"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	supplierID := kernel.NewUUID()

	t.Run("valid parameters", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSupplier, &supplierID)
		require.NoError(t, err)
		orderID := kernel.NewUUID()

		query, err := queries.NewGetOrderQuery(orderID, actor)
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.Equal(t, orderID, query.OrderID())
		assert.Equal(t, actor, query.Actor())
	})

	t.Run("invalid order id rejected", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager, nil)
		require.NoError(t, err)

		_, err = queries.NewGetOrderQuery(kernel.UUID{}, actor)
		assert.Error(t, err)
	})

	t.Run("invalid actor rejected", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.NewUUID(), kernel.Actor{})
		assert.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetOrderQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}
