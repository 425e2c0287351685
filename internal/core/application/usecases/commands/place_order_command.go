package commands

import (
	"errors"
	"slices"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand turns a confirmed payment into an order. The order id is
// chosen by the checkout before payment, so a redelivered confirmation
// carries the same id and places nothing new.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(orderID, userID, cart, address, payment)
//	if err != nil {
//	    return fmt.Errorf("invalid payment confirmation: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct {
	orderID kernel.UUID
	userID  kernel.UUID
	cart    []services.CartLine
	address kernel.Address
	payment order.PaymentMethod

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	orderID, userID kernel.UUID,
	cart []services.CartLine,
	address kernel.Address,
	payment order.PaymentMethod,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setCart(cart),
		cmd.setAddress(address),
		cmd.setPayment(payment),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID               { return c.orderID }
func (c PlaceOrderCommand) UserID() kernel.UUID                { return c.userID }
func (c PlaceOrderCommand) Cart() []services.CartLine          { return slices.Clone(c.cart) }
func (c PlaceOrderCommand) ShippingAddress() kernel.Address    { return c.address }
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod { return c.payment }

// ProductIDs lists each referenced product once, in cart order.
func (c PlaceOrderCommand) ProductIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.cart))
	for _, line := range c.cart {
		if !slices.Contains(ids, line.ProductID) {
			ids = append(ids, line.ProductID)
		}
	}
	return ids
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	c.userID = userID
	return nil
}

func (c *PlaceOrderCommand) setCart(cart []services.CartLine) error {
	if len(cart) == 0 {
		return errs.NewInvalidOrderError("at least one item is required")
	}
	c.cart = slices.Clone(cart)
	return nil
}

func (c *PlaceOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setPayment(payment order.PaymentMethod) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	c.payment = payment
	return nil
}
