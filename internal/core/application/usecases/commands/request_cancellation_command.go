package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrRequestCancellationCommandIsNotConstructed = errors.New(
	"RequestCancellationCommand must be created via NewRequestCancellationCommand constructor",
)

type RequestCancellationCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestCancellationCommand(orderID kernel.UUID) (RequestCancellationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestCancellationCommand{}, err
	}

	return RequestCancellationCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RequestCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancellationCommandIsNotConstructed)
}

func (c RequestCancellationCommand) OrderID() kernel.UUID { return c.orderID }
