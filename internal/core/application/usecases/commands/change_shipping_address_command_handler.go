package commands

import (
	"context"
)

// ChangeShippingAddressCommandHandler replaces the delivery address of an
// order that is still Received. Later statuses fail with OrderLockedError.
type ChangeShippingAddressCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeShippingAddressCommandHandler(uowFactory OrderUoWFactory) ChangeShippingAddressCommandHandler {
	return ChangeShippingAddressCommandHandler{uowFactory: uowFactory}
}

func (h ChangeShippingAddressCommandHandler) Handle(ctx context.Context, cmd ChangeShippingAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.ChangeShippingAddress(cmd.Address()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
