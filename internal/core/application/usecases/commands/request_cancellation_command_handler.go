package commands

import (
	"context"
)

// RequestCancellationCommandHandler answers a customer's cancellation
// request. Paid orders are never cancelled, so for an existing order the
// result is always an UnsupportedOperationError naming its current status.
// An unknown order yields ObjectNotFoundError. Nothing is ever written.
type RequestCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRequestCancellationCommandHandler(uowFactory OrderUoWFactory) RequestCancellationCommandHandler {
	return RequestCancellationCommandHandler{uowFactory: uowFactory}
}

func (h RequestCancellationCommandHandler) Handle(ctx context.Context, cmd RequestCancellationCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	return o.Cancel()
}
