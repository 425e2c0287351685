package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler applies one lifecycle step.
//
// Retries are safe: asking for a status the order has already reached
// succeeds without writing. Two writers racing on the same step are
// serialized by the repository's compare-and-swap; the loser re-reads the
// order and succeeds if its target has been reached in the meantime.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle returns the order's status after the command.
func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}

	previous := o.Status()
	changed, err := o.Advance(cmd.Target())
	if err != nil {
		return previous, err
	}
	if !changed {
		return o.Status(), nil
	}

	err = orderRepo.UpdateStatus(ctx, o, previous)
	if errors.Is(err, errs.ErrConcurrentModification) {
		return h.reconcile(ctx, orderRepo, cmd, err)
	}
	if err != nil {
		return previous, err
	}

	if err = uow.Commit(ctx); err != nil {
		return previous, err
	}

	return o.Status(), nil
}

// reconcile decides a lost compare-and-swap from the order's current state.
func (h AdvanceOrderStatusCommandHandler) reconcile(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	cmd AdvanceOrderStatusCommand,
	conflict error,
) (order.Status, error) {
	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}
	if current.Status() >= cmd.Target() {
		return current.Status(), nil
	}
	return current.Status(), conflict
}
