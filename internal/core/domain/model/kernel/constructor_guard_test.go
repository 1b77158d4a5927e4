package kernel_test

import (
	"errors"
	"testing"

	"procurement/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("guard from constructor passes validation", func(t *testing.T) {
		guard := kernel.NewConstructorGuard()

		assert.NoError(t, guard.Validate(errors.New("object not constructed")))
		assert.NoError(t, guard.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var guard kernel.ConstructorGuard
		notConstructed := errors.New("carrier must be created via NewCarrier")

		assert.Equal(t, notConstructed, guard.Validate(notConstructed))
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var guard kernel.ConstructorGuard

		assert.Equal(t, kernel.ErrDefaultConstructorGuard, guard.Validate(nil))
	})

	t.Run("default error names the constructor requirement", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", kernel.ErrDefaultConstructorGuard.Error())
	})
}

// Mirrors how the domain model embeds the guard in its value objects.
func TestConstructorGuard_InValueObject(t *testing.T) {
	var errTermsNotConstructed = errors.New("ProductTerms must be created via newProductTerms")

	type productTerms struct {
		productID string
		unitPrice int
		guard     kernel.ConstructorGuard
	}

	newProductTerms := func(productID string, unitPrice int) (productTerms, error) {
		if productID == "" {
			return productTerms{}, errors.New("product ID is required")
		}
		if unitPrice < 0 {
			return productTerms{}, errors.New("unit price cannot be negative")
		}
		return productTerms{
			productID: productID,
			unitPrice: unitPrice,
			guard:     kernel.NewConstructorGuard(),
		}, nil
	}

	t.Run("constructed value validates", func(t *testing.T) {
		terms, err := newProductTerms("prod-1", 250)

		require.NoError(t, err)
		assert.NoError(t, terms.guard.Validate(errTermsNotConstructed))
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var terms productTerms

		assert.Equal(t, errTermsNotConstructed, terms.guard.Validate(errTermsNotConstructed))
	})

	t.Run("constructor still enforces its own rules", func(t *testing.T) {
		_, err := newProductTerms("", 250)
		assert.ErrorContains(t, err, "product ID is required")

		_, err = newProductTerms("prod-1", -1)
		assert.ErrorContains(t, err, "unit price cannot be negative")
	})
}

func TestConstructorGuard_CopySemantics(t *testing.T) {
	t.Run("a copied guard keeps its constructed state", func(t *testing.T) {
		guard := kernel.NewConstructorGuard()
		copied := guard

		assert.NoError(t, guard.Validate(nil))
		assert.NoError(t, copied.Validate(nil))
	})
}
