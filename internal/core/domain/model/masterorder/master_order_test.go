package masterorder_test

import (
	"testing"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, stationID kernel.UUID, price string) *order.PurchaseOrder {
	t.Helper()

	line, err := order.NewLine(kernel.NewUUID(), 1, decimal.RequireFromString(price),
		"box", 6, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	po, err := order.NewPurchaseOrder(
		kernel.NewUUID(), kernel.NewOrderNumber(),
		kernel.NewUUID(), stationID, []order.Line{line}, kernel.NewUUID())
	require.NoError(t, err)
	return po
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		children []order.Status
		want     order.Status
	}{
		{
			name:     "single_child",
			children: []order.Status{order.StatusConfirmed},
			want:     order.StatusConfirmed,
		},
		{
			name:     "least_advanced_wins",
			children: []order.Status{order.StatusShipped, order.StatusRegistered, order.StatusReceived},
			want:     order.StatusRegistered,
		},
		{
			name:     "archived_children_are_ignored",
			children: []order.Status{order.StatusShipped, order.StatusReceived, order.StatusArchived},
			want:     order.StatusShipped,
		},
		{
			name:     "all_archived_means_archived",
			children: []order.Status{order.StatusArchived, order.StatusArchived},
			want:     order.StatusArchived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := masterorder.AggregateStatus(tt.children)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty_child_list_is_an_error", func(t *testing.T) {
		_, err := masterorder.AggregateStatus(nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown_child_status_is_an_error", func(t *testing.T) {
		_, err := masterorder.AggregateStatus([]order.Status{order.StatusUnknown})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewMasterOrder(t *testing.T) {
	t.Run("derives_total_and_status_from_children", func(t *testing.T) {
		stationID := kernel.NewUUID()
		orders := []*order.PurchaseOrder{
			newTestOrder(t, stationID, "20.00"),
			newTestOrder(t, stationID, "15.00"),
		}

		master, err := masterorder.NewMasterOrder(
			kernel.NewUUID(), kernel.NewMasterReference(), stationID, orders, kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, master.Validate())
		assert.Equal(t, order.StatusRegistered, master.Status())
		assert.True(t, master.Total().Equal(decimal.RequireFromString("35.00")),
			"total is %s", master.Total())
		require.Len(t, master.OrderIDs(), 2)
		assert.False(t, master.IsEmpty())
	})

	t.Run("rejects_empty_order_list", func(t *testing.T) {
		_, err := masterorder.NewMasterOrder(
			kernel.NewUUID(), kernel.NewMasterReference(), kernel.NewUUID(), nil, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_missing_reference", func(t *testing.T) {
		stationID := kernel.NewUUID()
		orders := []*order.PurchaseOrder{newTestOrder(t, stationID, "1.00")}

		_, err := masterorder.NewMasterOrder(
			kernel.NewUUID(), "", stationID, orders, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_master_order_fails_validation", func(t *testing.T) {
		var master masterorder.MasterOrder
		require.ErrorIs(t, master.Validate(), masterorder.ErrMasterOrderIsNotConstructed)
	})
}

func TestRefreshStatus(t *testing.T) {
	stationID := kernel.NewUUID()
	orders := []*order.PurchaseOrder{newTestOrder(t, stationID, "10.00")}
	master, err := masterorder.NewMasterOrder(
		kernel.NewUUID(), kernel.NewMasterReference(), stationID, orders, kernel.NewUUID())
	require.NoError(t, err)

	t.Run("unchanged_cache_reports_false", func(t *testing.T) {
		changed, err := master.RefreshStatus([]order.Status{order.StatusRegistered})
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("drifted_cache_is_updated", func(t *testing.T) {
		changed, err := master.RefreshStatus([]order.Status{order.StatusConfirmed})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.StatusConfirmed, master.Status())
	})
}

func TestDetachOrder(t *testing.T) {
	stationID := kernel.NewUUID()
	first := newTestOrder(t, stationID, "20.00")
	second := newTestOrder(t, stationID, "15.00")
	master, err := masterorder.NewMasterOrder(
		kernel.NewUUID(), kernel.NewMasterReference(), stationID,
		[]*order.PurchaseOrder{first, second}, kernel.NewUUID())
	require.NoError(t, err)

	t.Run("unknown_order_is_rejected", func(t *testing.T) {
		err := master.DetachOrder(kernel.NewUUID(), decimal.NewFromInt(1))
		require.ErrorIs(t, err, masterorder.ErrOrderIsNotPartOfMaster)
	})

	t.Run("detaching_removes_child_and_subtracts_total", func(t *testing.T) {
		require.NoError(t, master.DetachOrder(first.ID(), first.Total()))

		require.Len(t, master.OrderIDs(), 1)
		assert.True(t, master.OrderIDs()[0].IsEqual(second.ID()))
		assert.True(t, master.Total().Equal(decimal.RequireFromString("15.00")),
			"total is %s", master.Total())
	})

	t.Run("detaching_the_last_child_empties_the_master", func(t *testing.T) {
		require.NoError(t, master.DetachOrder(second.ID(), second.Total()))
		assert.True(t, master.IsEmpty())
	})
}
