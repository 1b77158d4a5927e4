package guard_test

import (
	"errors"
	"testing"

	"procurement/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed guard always validates", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		assert.NoError(t, g.Validate(errors.New("command is not constructed")))
		assert.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		notConstructed := errors.New("command must be created via its New function")

		assert.Equal(t, notConstructed, g.Validate(notConstructed))
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		require.Error(t, g.Validate(nil))
		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

// Mirrors the command pattern in the usecases layer: a guarded struct whose
// zero value must be unusable.
func TestConstructorGuard_InCommand(t *testing.T) {
	var errNotConstructed = errors.New("archiveCommand must be created via newArchiveCommand")

	type archiveCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}

	newArchiveCommand := func(orderID string) (archiveCommand, error) {
		if orderID == "" {
			return archiveCommand{}, errors.New("order ID is required")
		}
		return archiveCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed command validates", func(t *testing.T) {
		cmd, err := newArchiveCommand("order-1")

		require.NoError(t, err)
		assert.NoError(t, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("zero value command is rejected", func(t *testing.T) {
		var cmd archiveCommand

		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})
}
