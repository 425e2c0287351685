// Package commands contains the operations that change storefront state.
// Every handler follows the same shape: validate the command, open a unit of
// work, run the domain operation, persist, commit. A failed handler leaves
// the store untouched; the deferred rollback discards the transaction.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of work views narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	CategoryRepoFactory interface {
		CategoryRepository() ports.CategoryRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CatalogUoW is used by commands that maintain products, reviews and
	// categories.
	CatalogUoW interface {
		TxManager
		ProductRepoFactory
		CategoryRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// UoW spans orders and the catalog. Placing an order writes the order
	// and the stock reservations in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   productRepo := uow.ProductRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		CategoryRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
