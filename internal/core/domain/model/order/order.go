package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned for orders not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTotalsMismatch is returned when restored totals contradict the items.
	ErrTotalsMismatch = errors.New("stored totals do not match order items")
)

// Order is the aggregate root of a customer purchase. It owns its items,
// totals, delivery address and payment method, and guards the fulfillment
// lifecycle through Status.
//
// Invariants:
//   - at least one item
//   - subtotal equals the sum of line totals
//   - total equals subtotal + tax + shipping fee
//   - items, shipping address and payment method change only in Received
type Order struct {
	id              kernel.UUID
	userID          kernel.UUID
	items           []Item
	status          Status
	taxRate         decimal.Decimal
	totals          pricing.Totals
	shippingAddress kernel.Address
	paymentMethod   PaymentMethod
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order from a confirmed payment. The order starts in
// Received and its totals are computed by engine at taxRate.
//
// Example:
//
//	item, _ := order.NewItem(productID, "Heirloom tomatoes", 2, kernel.MustMoneyFromCents(1200))
//	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.Item{item},
//	    address, payment, engine, decimal.Zero, time.Now())
//	// o.Totals().Total == 29.00
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []Item,
	shippingAddress kernel.Address,
	paymentMethod PaymentMethod,
	engine pricing.Engine,
	taxRate decimal.Decimal,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:  Received,
		taxRate: taxRate,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setShippingAddress(shippingAddress),
		o.setPaymentMethod(paymentMethod),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if err := o.setItems(items, engine); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. Stored totals are checked
// against the items so a corrupted row is rejected rather than served.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []Item,
	status Status,
	totals pricing.Totals,
	taxRate decimal.Decimal,
	shippingAddress kernel.Address,
	paymentMethod PaymentMethod,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		taxRate: taxRate,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		status.Validate(),
		validateItems(items),
		o.setShippingAddress(shippingAddress),
		o.setPaymentMethod(paymentMethod),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if !totalsMatch(items, totals) {
		return nil, fmt.Errorf("order %s: %w", id, ErrTotalsMismatch)
	}

	o.items = slices.Clone(items)
	o.status = status
	o.totals = totals
	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) UserID() kernel.UUID             { return o.userID }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) TaxRate() decimal.Decimal        { return o.taxRate }
func (o *Order) Totals() pricing.Totals          { return o.totals }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) PaymentMethod() PaymentMethod    { return o.paymentMethod }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }

// Items returns a copy; callers cannot alter the order through it.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// Advance moves the order to target if target is the immediate successor of
// the current status. Advancing to a status already reached is a no-op and
// reports changed == false. Any other target is rejected and leaves the
// order untouched.
func (o *Order) Advance(target Status) (bool, error) {
	next, err := o.status.AdvanceTo(target)
	if err != nil {
		return false, err
	}

	changed := next != o.status
	o.status = next
	return changed, nil
}

// Cancel always fails: orders cannot be cancelled after payment.
func (o *Order) Cancel() error {
	return errs.NewUnsupportedOperationError("cancel", o.status.String())
}

// Refund always fails: a refund never rolls the lifecycle back.
func (o *Order) Refund() error {
	return errs.NewUnsupportedOperationError("refund", o.status.String())
}

// ReplaceItems swaps the order contents and recomputes totals with engine
// at the order's tax rate. Only allowed in Received.
func (o *Order) ReplaceItems(items []Item, engine pricing.Engine) error {
	if err := o.ensureMutable("items"); err != nil {
		return err
	}
	return o.setItems(items, engine)
}

// ChangeShippingAddress is only allowed in Received.
func (o *Order) ChangeShippingAddress(address kernel.Address) error {
	if err := o.ensureMutable("shipping address"); err != nil {
		return err
	}
	return o.setShippingAddress(address)
}

// ChangePaymentMethod is only allowed in Received.
func (o *Order) ChangePaymentMethod(method PaymentMethod) error {
	if err := o.ensureMutable("payment method"); err != nil {
		return err
	}
	return o.setPaymentMethod(method)
}

func (o *Order) ensureMutable(field string) error {
	if !o.status.IsMutable() {
		return errs.NewOrderLockedError(o.id, field, o.status.String())
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt.UTC()
	return nil
}

// setItems prices the items before touching the order so a rejected update
// leaves both items and totals as they were.
func (o *Order) setItems(items []Item, engine pricing.Engine) error {
	if err := validateItems(items); err != nil {
		return err
	}

	totals, err := engine.ComputeTotals(lines(items), o.taxRate)
	if err != nil {
		return err
	}

	o.items = slices.Clone(items)
	o.totals = totals
	return nil
}

func totalsMatch(items []Item, totals pricing.Totals) bool {
	subtotal := kernel.Zero
	for _, it := range items {
		var err error
		if subtotal, err = subtotal.Add(it.LineTotal()); err != nil {
			return false
		}
	}

	total, err := totals.Subtotal.Add(totals.Tax)
	if err == nil {
		total, err = total.Add(totals.ShippingFee)
	}
	return err == nil && subtotal == totals.Subtotal && total == totals.Total
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewInvalidOrderError("at least one item is required")
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return errs.NewInvalidOrderErrorWithCause("item", err)
		}
	}
	return nil
}
