package order_test

import (
	"testing"

	"procurement/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	valid := []order.Status{
		order.StatusRegistered,
		order.StatusConfirmed,
		order.StatusShipped,
		order.StatusReceived,
		order.StatusClosed,
		order.StatusInvoiced,
		order.StatusArchived,
	}
	for _, status := range valid {
		t.Run(status.String(), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("unknown_is_invalid", func(t *testing.T) {
		require.Error(t, order.StatusUnknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Registered", order.StatusRegistered.String())
	assert.Equal(t, "Confirmed", order.StatusConfirmed.String())
	assert.Equal(t, "Shipped", order.StatusShipped.String())
	assert.Equal(t, "Received", order.StatusReceived.String())
	assert.Equal(t, "Closed", order.StatusClosed.String())
	assert.Equal(t, "Invoiced", order.StatusInvoiced.String())
	assert.Equal(t, "Archived", order.StatusArchived.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round_trips_valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.StatusRegistered,
			order.StatusConfirmed,
			order.StatusShipped,
			order.StatusReceived,
			order.StatusClosed,
			order.StatusInvoiced,
			order.StatusArchived,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects_unknown_strings", func(t *testing.T) {
		_, err := order.StatusFromString("Delivered")
		require.Error(t, err)

		_, err = order.StatusFromString("")
		require.Error(t, err)
	})
}

func TestStatusOrdering(t *testing.T) {
	t.Run("chain_is_strictly_increasing", func(t *testing.T) {
		chain := []order.Status{
			order.StatusRegistered,
			order.StatusConfirmed,
			order.StatusShipped,
			order.StatusReceived,
			order.StatusClosed,
			order.StatusInvoiced,
			order.StatusArchived,
		}
		for i := 1; i < len(chain); i++ {
			assert.True(t, chain[i-1].Before(chain[i]),
				"%s should precede %s", chain[i-1], chain[i])
		}
	})

	t.Run("only_archived_is_terminal", func(t *testing.T) {
		assert.True(t, order.StatusArchived.IsTerminal())
		assert.False(t, order.StatusRegistered.IsTerminal())
		assert.False(t, order.StatusInvoiced.IsTerminal())
	})
}
