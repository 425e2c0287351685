package commands

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
)

// CreateCategoryCommandHandler adds a category after checking the resulting
// tree: the parent must exist and the slug must be unused.
type CreateCategoryCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateCategoryCommandHandler(uowFactory CatalogUoWFactory) CreateCategoryCommandHandler {
	return CreateCategoryCommandHandler{uowFactory: uowFactory}
}

func (h CreateCategoryCommandHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) error {
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

	categoryRepo := uow.CategoryRepository()

	existing, err := categoryRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	if err = catalog.ValidateHierarchy(append(existing, cmd.Category())); err != nil {
		return err
	}

	if err = categoryRepo.Add(ctx, cmd.Category()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
