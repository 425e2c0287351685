package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrChangeShippingAddressCommandIsNotConstructed = errors.New(
	"ChangeShippingAddressCommand must be created via NewChangeShippingAddressCommand constructor",
)

type ChangeShippingAddressCommand struct {
	orderID kernel.UUID
	address kernel.Address

	guard guard.ConstructorGuard
}

func NewChangeShippingAddressCommand(orderID kernel.UUID, address kernel.Address) (ChangeShippingAddressCommand, error) {
	if err := errors.Join(orderID.Validate(), address.Validate()); err != nil {
		return ChangeShippingAddressCommand{}, err
	}

	return ChangeShippingAddressCommand{
		orderID: orderID,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeShippingAddressCommand) Validate() error {
	return c.guard.Validate(ErrChangeShippingAddressCommandIsNotConstructed)
}

func (c ChangeShippingAddressCommand) OrderID() kernel.UUID    { return c.orderID }
func (c ChangeShippingAddressCommand) Address() kernel.Address { return c.address }
