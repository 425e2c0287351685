package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should trim and keep all fields", func(t *testing.T) {
		a, err := kernel.NewAddress(" Ana Ruiz ", "12 Orchard Lane", "Springfield", "12345", "")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "Ana Ruiz", a.Recipient())
		assert.Equal(t, "12 Orchard Lane", a.Street())
		assert.Equal(t, "Springfield", a.City())
		assert.Equal(t, "12345", a.PostalCode())
		assert.Empty(t, a.Phone())
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := kernel.NewAddress("", " ", "", "", "555-0100")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "recipient")
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "postal code")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var a kernel.Address

		require.ErrorIs(t, a.Validate(), kernel.ErrAddressIsNotConstructed)
	})

	t.Run("equality compares every field", func(t *testing.T) {
		a, _ := kernel.NewAddress("Ana", "1 Main St", "Springfield", "12345", "")
		b, _ := kernel.NewAddress("Ana", "1 Main St", "Springfield", "12345", "")
		c, _ := kernel.NewAddress("Ana", "2 Main St", "Springfield", "12345", "")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}
