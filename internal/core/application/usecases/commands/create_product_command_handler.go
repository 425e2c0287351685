package commands

import (
	"context"
)

// CreateProductCommandHandler adds a product to an existing category.
// An unknown category fails with ObjectNotFoundError.
type CreateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateProductCommandHandler(uowFactory CatalogUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{uowFactory: uowFactory}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
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

	product := cmd.Product()
	if _, err := uow.CategoryRepository().Get(ctx, product.CategoryID()); err != nil {
		return err
	}

	if err := uow.ProductRepository().Add(ctx, product); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
