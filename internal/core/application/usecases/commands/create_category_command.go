package commands

import (
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrCreateCategoryCommandIsNotConstructed = errors.New(
	"CreateCategoryCommand must be created via NewCreateCategoryCommand constructor",
)

// CreateCategoryCommand carries an already validated category. Whether its
// parent exists is checked by the handler against the stored tree.
type CreateCategoryCommand struct {
	category catalog.Category

	guard guard.ConstructorGuard
}

func NewCreateCategoryCommand(id kernel.UUID, name, slug string, parentID *kernel.UUID) (CreateCategoryCommand, error) {
	category, err := catalog.NewCategory(id, name, slug, parentID)
	if err != nil {
		return CreateCategoryCommand{}, err
	}

	return CreateCategoryCommand{category: category, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCategoryCommand) Validate() error {
	return c.guard.Validate(ErrCreateCategoryCommandIsNotConstructed)
}

func (c CreateCategoryCommand) Category() catalog.Category { return c.category }
