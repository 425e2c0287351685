package order_test

import (
	"fmt"
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lifecycle = []order.Status{order.Received, order.Processing, order.Shipped, order.Delivered}

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Received))
	assert.Equal(t, 2, int(order.Processing))
	assert.Equal(t, 3, int(order.Shipped))
	assert.Equal(t, 4, int(order.Delivered))
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range lifecycle {
		t.Run(status.String(), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(5)} {
		t.Run(fmt.Sprintf("rejects %d", int(status)), func(t *testing.T) {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			assert.Equal(t, "unknown", status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, status := range lifecycle {
		parsed, err := order.ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	parsed, err := order.ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, order.Shipped, parsed)

	_, err = order.ParseStatus("cancelled")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Next(t *testing.T) {
	for i, status := range lifecycle[:len(lifecycle)-1] {
		next, err := status.Next()
		require.NoError(t, err)
		assert.Equal(t, lifecycle[i+1], next)
	}

	_, err := order.Delivered.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivered is terminal")
	assert.True(t, order.Delivered.IsTerminal())
}

func TestStatus_AdvanceTo(t *testing.T) {
	t.Run("allows exactly one step forward", func(t *testing.T) {
		got, err := order.Received.AdvanceTo(order.Processing)
		require.NoError(t, err)
		assert.Equal(t, order.Processing, got)
	})

	t.Run("rejects skipping a state", func(t *testing.T) {
		got, err := order.Received.AdvanceTo(order.Shipped)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Unknown, got)
		assert.Contains(t, err.Error(), "received cannot advance to shipped, next status is processing")
	})

	t.Run("already reached states are no-ops", func(t *testing.T) {
		for i, current := range lifecycle {
			for _, target := range lifecycle[:i+1] {
				got, err := current.AdvanceTo(target)
				require.NoError(t, err)
				assert.Equal(t, current, got, "%s -> %s", current, target)
			}
		}
	})

	t.Run("never decreases lifecycle position", func(t *testing.T) {
		for _, current := range lifecycle {
			for _, target := range lifecycle {
				got, err := current.AdvanceTo(target)
				if err != nil {
					continue
				}
				assert.GreaterOrEqual(t, int(got), int(current))
				assert.LessOrEqual(t, int(got), int(current)+1)
			}
		}
	})

	t.Run("rejects invalid target", func(t *testing.T) {
		_, err := order.Processing.AdvanceTo(order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("only received is mutable", func(t *testing.T) {
		assert.True(t, order.Received.IsMutable())
		assert.False(t, order.Processing.IsMutable())
		assert.False(t, order.Shipped.IsMutable())
		assert.False(t, order.Delivered.IsMutable())
	})
}
