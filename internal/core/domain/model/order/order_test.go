package order_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engine = pricing.NewEngine(pricing.DefaultPolicy())

func newItem(t *testing.T, priceCents int64, qty int) order.Item {
	t.Helper()
	it, err := order.NewItem(kernel.NewUUID(), "Heirloom tomatoes", qty, kernel.MustMoneyFromCents(priceCents))
	require.NoError(t, err)
	return it
}

func newAddress(t *testing.T, street string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("Ana Ruiz", street, "Springfield", "12345", "")
	require.NoError(t, err)
	return a
}

func newPayment(t *testing.T) order.PaymentMethod {
	t.Helper()
	p, err := order.NewPaymentMethod(order.Card, "pi_123")
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, items ...order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items,
		newAddress(t, "1 Main St"), newPayment(t), engine, decimal.Zero, time.Now())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should start in received with computed totals", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1200, 2))

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Received, o.Status())
		assert.Equal(t, "24.00", o.Totals().Subtotal.String())
		assert.Equal(t, "5.00", o.Totals().ShippingFee.String())
		assert.Equal(t, "29.00", o.Totals().Total.String())
		assert.Len(t, o.Items(), 1)
		assert.Equal(t, time.UTC, o.CreatedAt().Location())
	})

	t.Run("should reject an empty cart", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil,
			newAddress(t, "1 Main St"), newPayment(t), engine, decimal.Zero, time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidOrder)
		assert.Nil(t, o)
	})

	t.Run("should join identity and address errors", func(t *testing.T) {
		var address kernel.Address

		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, []order.Item{newItem(t, 100, 1)},
			address, newPayment(t), engine, decimal.Zero, time.Time{})

		require.Error(t, err)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
		assert.Contains(t, err.Error(), "created at")
	})

	t.Run("should reject zero value items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{{}},
			newAddress(t, "1 Main St"), newPayment(t), engine, decimal.Zero, time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidOrder)
	})
}

func TestNewItem(t *testing.T) {
	_, err := order.NewItem(kernel.NewUUID(), "Kale", 0, kernel.MustMoneyFromCents(300))
	require.ErrorIs(t, err, errs.ErrInvalidOrder)
	assert.Contains(t, err.Error(), "quantity 0 is not greater than 0")

	_, err = order.NewItem(kernel.UUID{}, " ", 1, kernel.Zero)
	require.ErrorIs(t, err, errs.ErrInvalidOrder)
	assert.Contains(t, err.Error(), "product name")

	it, err := order.NewItem(kernel.NewUUID(), " Kale ", 3, kernel.MustMoneyFromCents(250))
	require.NoError(t, err)
	assert.Equal(t, "Kale", it.ProductName())
	assert.Equal(t, "7.50", it.LineTotal().String())

	_, err = order.NewItem(kernel.NewUUID(), "Kale", 10_000, kernel.MustMoneyFromCents(1_000_000_000_000_000))
	require.ErrorIs(t, err, errs.ErrInvalidOrder)
	require.ErrorContains(t, err, "max value is 92233720368547758.07")
}

func TestOrder_Advance(t *testing.T) {
	t.Run("should walk the full lifecycle", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1500, 2))

		for _, target := range []order.Status{order.Processing, order.Shipped, order.Delivered} {
			changed, err := o.Advance(target)
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, target, o.Status())
		}
	})

	t.Run("retrying the same advance is a no-op", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1500, 2))
		_, _ = o.Advance(order.Processing)

		changed, err := o.Advance(order.Processing)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, order.Processing, o.Status())
	})

	t.Run("received to shipped fails and keeps state", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1500, 2))

		changed, err := o.Advance(order.Shipped)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, changed)
		assert.Equal(t, order.Received, o.Status())
	})

	t.Run("delivered cannot move anywhere", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1500, 2))
		for _, s := range []order.Status{order.Processing, order.Shipped, order.Delivered} {
			_, _ = o.Advance(s)
		}

		changed, err := o.Advance(order.Received)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestOrder_CancelAndRefund(t *testing.T) {
	o := newOrder(t, newItem(t, 1500, 2))

	err := o.Cancel()
	require.ErrorIs(t, err, errs.ErrUnsupportedOperation)
	assert.Contains(t, err.Error(), "cancel is not allowed in received status")

	_, _ = o.Advance(order.Processing)
	err = o.Refund()
	require.ErrorIs(t, err, errs.ErrUnsupportedOperation)
	assert.Equal(t, order.Processing, o.Status())
}

func TestOrder_Mutations(t *testing.T) {
	t.Run("received order accepts changes and reprices", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1200, 2))

		require.NoError(t, o.ReplaceItems([]order.Item{newItem(t, 1500, 2)}, engine))
		assert.Equal(t, "30.00", o.Totals().Total.String())
		assert.True(t, o.Totals().ShippingFee.IsZero())

		newAddr := newAddress(t, "9 Elm St")
		require.NoError(t, o.ChangeShippingAddress(newAddr))
		assert.True(t, o.ShippingAddress().IsEqual(newAddr))

		cash, err := order.NewPaymentMethod(order.CashOnDelivery, "")
		require.NoError(t, err)
		require.NoError(t, o.ChangePaymentMethod(cash))
		assert.Equal(t, order.CashOnDelivery, o.PaymentMethod().Kind())
	})

	t.Run("rejected replacement leaves order untouched", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1200, 2))
		before := o.Totals()

		err := o.ReplaceItems(nil, engine)

		require.ErrorIs(t, err, errs.ErrInvalidOrder)
		assert.Equal(t, before, o.Totals())
		assert.Len(t, o.Items(), 1)
	})

	t.Run("processing order is locked", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1200, 2))
		original := o.ShippingAddress()
		_, err := o.Advance(order.Processing)
		require.NoError(t, err)

		err = o.ChangeShippingAddress(newAddress(t, "9 Elm St"))
		require.ErrorIs(t, err, errs.ErrOrderLocked)
		assert.IsType(t, &errs.OrderLockedError{}, err)
		assert.True(t, o.ShippingAddress().IsEqual(original))

		require.ErrorIs(t, o.ReplaceItems([]order.Item{newItem(t, 100, 1)}, engine), errs.ErrOrderLocked)
		require.ErrorIs(t, o.ChangePaymentMethod(newPayment(t)), errs.ErrOrderLocked)
	})

	t.Run("items accessor returns a copy", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1200, 2))
		items := o.Items()
		items[0] = newItem(t, 1, 1)

		assert.Equal(t, int64(1200), o.Items()[0].Price().Cents())
	})
}

func TestRestoreOrder(t *testing.T) {
	item := newItem(t, 1200, 2)
	totals := pricing.Totals{
		Subtotal:    kernel.MustMoneyFromCents(2400),
		Tax:         kernel.Zero,
		ShippingFee: kernel.MustMoneyFromCents(500),
		Total:       kernel.MustMoneyFromCents(2900),
	}

	t.Run("should restore consistent state", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, order.Shipped,
			totals, decimal.Zero, newAddress(t, "1 Main St"), newPayment(t), time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, totals, o.Totals())
	})

	t.Run("should reject mismatching totals", func(t *testing.T) {
		broken := totals
		broken.Total = kernel.MustMoneyFromCents(3000)

		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, order.Received,
			broken, decimal.Zero, newAddress(t, "1 Main St"), newPayment(t), time.Now())

		require.ErrorIs(t, err, order.ErrTotalsMismatch)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, order.Unknown,
			totals, decimal.Zero, newAddress(t, "1 Main St"), newPayment(t), time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

	var zero order.Order
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
}

func TestNewPaymentMethod(t *testing.T) {
	_, err := order.NewPaymentMethod("crypto", "x")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewPaymentMethod(order.BankTransfer, " ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	p, err := order.NewPaymentMethod(order.CashOnDelivery, "")
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.Empty(t, p.Reference())
}
