package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand moves an order one step along
// received -> processing -> shipped -> delivered.
type AdvanceOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

func NewAdvanceOrderStatusCommand(orderID kernel.UUID, target order.Status) (AdvanceOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return AdvanceOrderStatusCommand{
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c AdvanceOrderStatusCommand) Target() order.Status { return c.target }
