package kernel_test

import (
	"testing"

	"procurement/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValidate(t *testing.T) {
	valid := []kernel.Role{
		kernel.RoleStation,
		kernel.RoleSupplier,
		kernel.RoleManager,
		kernel.RoleHandler,
		kernel.RoleAdmin,
	}
	for _, role := range valid {
		t.Run(role.String(), func(t *testing.T) {
			require.NoError(t, role.Validate())
		})
	}

	t.Run("unknown_is_invalid", func(t *testing.T) {
		require.Error(t, kernel.RoleUnknown.Validate())
		require.Error(t, kernel.Role(99).Validate())
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("parses_valid_roles", func(t *testing.T) {
		role, err := kernel.RoleFromString("Supplier")
		require.NoError(t, err)
		assert.Equal(t, kernel.RoleSupplier, role)
	})

	t.Run("rejects_unknown_role", func(t *testing.T) {
		_, err := kernel.RoleFromString("Courier")
		require.Error(t, err)
	})

	t.Run("is_case_sensitive", func(t *testing.T) {
		_, err := kernel.RoleFromString("supplier")
		require.Error(t, err)
	})
}

func TestRoleIsEntityScoped(t *testing.T) {
	assert.True(t, kernel.RoleStation.IsEntityScoped())
	assert.True(t, kernel.RoleSupplier.IsEntityScoped())
	assert.False(t, kernel.RoleManager.IsEntityScoped())
	assert.False(t, kernel.RoleHandler.IsEntityScoped())
	assert.False(t, kernel.RoleAdmin.IsEntityScoped())
}

func TestNewActor(t *testing.T) {
	t.Run("creates_entity_scoped_actor", func(t *testing.T) {
		entity := kernel.NewUUID()
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSupplier, &entity)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.Equal(t, kernel.RoleSupplier, actor.Role())
		assert.True(t, actor.ActsFor(entity))
	})

	t.Run("creates_system_wide_actor_without_entity", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager, nil)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.Nil(t, actor.EntityID())
	})

	t.Run("entity_scoped_role_requires_entity", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleStation, nil)
		require.Error(t, err)
	})

	t.Run("rejects_invalid_role", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleUnknown, nil)
		require.Error(t, err)
	})

	t.Run("zero_value_actor_fails_validation", func(t *testing.T) {
		var actor kernel.Actor
		require.ErrorIs(t, actor.Validate(), kernel.ErrActorIsNotConstructed)
	})
}

func TestActorActsFor(t *testing.T) {
	supplierID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSupplier, &supplierID)
	require.NoError(t, err)

	assert.True(t, actor.ActsFor(supplierID))
	assert.False(t, actor.ActsFor(otherID))

	manager, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleManager, nil)
	require.NoError(t, err)
	assert.False(t, manager.ActsFor(supplierID))
}

func TestDocumentNumbers(t *testing.T) {
	t.Run("order_numbers_are_prefixed_and_unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			n := kernel.NewOrderNumber()
			assert.Regexp(t, `^PO-\d{8}-[0-9A-F]{8}$`, n)
			assert.False(t, seen[n])
			seen[n] = true
		}
	})

	t.Run("master_references_are_prefixed_and_unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			ref := kernel.NewMasterReference()
			assert.Regexp(t, `^MO-\d{8}-[0-9A-F]{8}$`, ref)
			assert.False(t, seen[ref])
			seen[ref] = true
		}
	})
}
