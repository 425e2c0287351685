package commands

import (
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand carries a validated product without reviews.
type CreateProductCommand struct {
	product *catalog.Product

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(id kernel.UUID, attributes catalog.Attributes) (CreateProductCommand, error) {
	product, err := catalog.NewProduct(id, attributes)
	if err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{product: product, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Product() *catalog.Product { return c.product }
