package pricing_test

import (
	"math"
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cents(c int64) kernel.Money {
	return kernel.MustMoneyFromCents(c)
}

func TestEngine_ComputeTotals_Scenarios(t *testing.T) {
	engine := pricing.NewEngine(pricing.DefaultPolicy())

	t.Run("below threshold pays flat fee", func(t *testing.T) {
		totals, err := engine.ComputeTotals([]pricing.Line{{UnitPrice: cents(1200), Quantity: 2}}, decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, "24.00", totals.Subtotal.String())
		assert.Equal(t, "5.00", totals.ShippingFee.String())
		assert.Equal(t, "0.00", totals.Tax.String())
		assert.Equal(t, "29.00", totals.Total.String())
	})

	t.Run("exactly at threshold ships free", func(t *testing.T) {
		totals, err := engine.ComputeTotals([]pricing.Line{{UnitPrice: cents(1500), Quantity: 2}}, decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, "30.00", totals.Subtotal.String())
		assert.True(t, totals.ShippingFee.IsZero())
		assert.Equal(t, "30.00", totals.Total.String())
	})

	t.Run("one cent below threshold", func(t *testing.T) {
		totals, err := engine.ComputeTotals([]pricing.Line{{UnitPrice: cents(2999), Quantity: 1}}, decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, "5.00", totals.ShippingFee.String())
		assert.Equal(t, "34.99", totals.Total.String())
	})

	t.Run("tax is rounded half up to cents", func(t *testing.T) {
		// 10.50 * 0.05 = 0.525 -> 0.53
		totals, err := engine.ComputeTotals(
			[]pricing.Line{{UnitPrice: cents(1050), Quantity: 1}},
			decimal.RequireFromString("0.05"),
		)

		require.NoError(t, err)
		assert.Equal(t, "0.53", totals.Tax.String())
		assert.Equal(t, "16.03", totals.Total.String())
	})

	t.Run("free items still pay shipping", func(t *testing.T) {
		totals, err := engine.ComputeTotals([]pricing.Line{{UnitPrice: kernel.Zero, Quantity: 3}}, decimal.Zero)

		require.NoError(t, err)
		assert.True(t, totals.Subtotal.IsZero())
		assert.Equal(t, "5.00", totals.Total.String())
	})
}

func TestEngine_ComputeTotals_Properties(t *testing.T) {
	engine := pricing.NewEngine(pricing.DefaultPolicy())
	rates := []decimal.Decimal{decimal.Zero, decimal.RequireFromString("0.07"), decimal.RequireFromString("0.2")}

	for unit := int64(1); unit <= 4000; unit += 37 {
		for qty := 1; qty <= 3; qty++ {
			for _, rate := range rates {
				lines := []pricing.Line{{UnitPrice: cents(unit), Quantity: qty}, {UnitPrice: cents(99), Quantity: 1}}

				totals, err := engine.ComputeTotals(lines, rate)
				require.NoError(t, err)

				require.Equal(t, totals.Subtotal.Cents()+totals.Tax.Cents()+totals.ShippingFee.Cents(), totals.Total.Cents())
				require.Equal(t, unit*int64(qty)+99, totals.Subtotal.Cents())

				if totals.Subtotal.Cents() >= 3000 {
					require.True(t, totals.ShippingFee.IsZero())
				} else {
					require.Equal(t, int64(500), totals.ShippingFee.Cents())
				}

				again, err := engine.ComputeTotals(lines, rate)
				require.NoError(t, err)
				require.Equal(t, totals, again)
			}
		}
	}
}

func TestEngine_ComputeTotals_Validation(t *testing.T) {
	engine := pricing.NewEngine(pricing.DefaultPolicy())

	testCases := []struct {
		name     string
		lines    []pricing.Line
		rate     decimal.Decimal
		expected string
	}{
		{"no lines", nil, decimal.Zero, "at least one item is required"},
		{"zero quantity", []pricing.Line{{UnitPrice: cents(100), Quantity: 0}}, decimal.Zero, "quantity 0 is not greater than 0"},
		{"negative quantity", []pricing.Line{{UnitPrice: cents(100), Quantity: 1}, {UnitPrice: cents(100), Quantity: -2}}, decimal.Zero, "item 2"},
		{"negative tax rate", []pricing.Line{{UnitPrice: cents(100), Quantity: 1}}, decimal.RequireFromString("-0.1"), "tax rate"},
		{"line total overflows", []pricing.Line{{UnitPrice: cents(1_000_000_000_000_000), Quantity: 10_000}}, decimal.Zero, "item 1"},
		{"subtotal overflows", []pricing.Line{{UnitPrice: cents(math.MaxInt64), Quantity: 1}, {UnitPrice: cents(1), Quantity: 1}}, decimal.Zero, "subtotal"},
		{"tax overflows", []pricing.Line{{UnitPrice: cents(math.MaxInt64 / 2), Quantity: 1}}, decimal.NewFromInt(3), "tax"},
		{"total overflows", []pricing.Line{{UnitPrice: cents(math.MaxInt64 - 100), Quantity: 1}}, decimal.RequireFromString("0.0000000000000001"), "total"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.ComputeTotals(tc.lines, tc.rate)

			require.ErrorIs(t, err, errs.ErrInvalidOrder)
			assert.IsType(t, &errs.InvalidOrderError{}, err)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestPolicy_Configurable(t *testing.T) {
	policy := pricing.Policy{
		FreeShippingThreshold: cents(5000),
		FlatShippingFee:       cents(750),
	}
	engine := pricing.NewEngine(policy)

	totals, err := engine.ComputeTotals([]pricing.Line{{UnitPrice: cents(4000), Quantity: 1}}, decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, "7.50", totals.ShippingFee.String())
	assert.Equal(t, policy, engine.Policy())
	assert.True(t, policy.ShippingFee(cents(5000)).IsZero())
}
