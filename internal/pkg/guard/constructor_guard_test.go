package guard_test

import (
	"errors"
	"testing"

	"sellerconsole/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

// TestConstructorGuardUsage shows the guard embedded in a line-item style value object.
func TestConstructorGuardUsage(t *testing.T) {
	type lineItem struct {
		productID string
		quantity  int
		guard     guard.ConstructorGuard
	}

	errLineItemNotConstructed := errors.New("lineItem must be created via newLineItem")

	newLineItem := func(productID string, quantity int) (lineItem, error) {
		if productID == "" {
			return lineItem{}, errors.New("product id is required")
		}
		if quantity <= 0 {
			return lineItem{}, errors.New("quantity must be positive")
		}
		return lineItem{productID: productID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_item_is_valid", func(t *testing.T) {
		item, err := newLineItem("sku-1", 2)

		require.NoError(t, err)
		require.NoError(t, item.guard.Validate(errLineItemNotConstructed))
		assert.Equal(t, 2, item.quantity)
	})

	t.Run("zero_value_item_is_rejected", func(t *testing.T) {
		var item lineItem

		assert.Equal(t, errLineItemNotConstructed, item.guard.Validate(errLineItemNotConstructed))
	})

	t.Run("constructor_rejects_bad_input", func(t *testing.T) {
		_, err := newLineItem("", 1)
		require.Error(t, err)

		_, err = newLineItem("sku-1", 0)
		require.Error(t, err)
	})
}
