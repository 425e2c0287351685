package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PlaceOrderCommandHandler places an order for a confirmed payment and
// reserves the ordered stock in the same transaction.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, checkout, decimal.Zero)
//	created, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidOrder):
//	    // unknown product or not enough stock
//	case err != nil:
//	    return err
//	case !created:
//	    // confirmation redelivered; the order already exists
//	}
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	checkout   services.Checkout
	taxRate    decimal.Decimal
	now        func() time.Time
}

func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	checkout services.Checkout,
	taxRate decimal.Decimal,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		checkout:   checkout,
		taxRate:    taxRate,
		now:        time.Now,
	}
}

// Handle reports created == false when an order with the command's id
// already exists; nothing is written in that case.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	_, err := orderRepo.Get(ctx, cmd.OrderID())
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return false, err
	}

	products, err := productRepo.GetMany(ctx, cmd.ProductIDs())
	if err != nil {
		return false, err
	}

	stockBefore := make(map[kernel.UUID]int, len(products))
	for _, p := range products {
		stockBefore[p.ID()] = p.Stock()
	}

	placed, err := h.checkout.Place(
		cmd.OrderID(),
		cmd.UserID(),
		cmd.Cart(),
		products,
		cmd.ShippingAddress(),
		cmd.PaymentMethod(),
		h.taxRate,
		h.now(),
	)
	if err != nil {
		return false, err
	}

	// A concurrent delivery of the same confirmation may insert first.
	if err = orderRepo.Add(ctx, placed); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	for _, p := range products {
		if err = productRepo.UpdateStock(ctx, p, stockBefore[p.ID()]); err != nil {
			return false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
