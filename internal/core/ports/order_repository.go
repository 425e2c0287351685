// Package ports defines the persistence contracts of the storefront core.
// The domain and application layers depend on these interfaces; adapters
// under internal/adapters/out implement them.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its items.
	// Adding an id that already exists fails.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable parts of an order: items, totals,
	// shipping address and payment method. Status is left untouched, and the
	// write fails with errs.ConcurrentModificationError if the stored status
	// no longer matches the aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus writes aggregate's status only if the stored status still
	// equals expected. A lost race fails with errs.ConcurrentModificationError,
	// an unknown order with errs.ObjectNotFoundError.
	//
	// Example:
	//   previous := o.Status()
	//   if _, err := o.Advance(order.Processing); err != nil {
	//       return err
	//   }
	//   err := repo.UpdateStatus(ctx, o, previous)
	//   if errors.Is(err, errs.ErrConcurrentModification) {
	//       // somebody else advanced the order first; re-read it
	//   }
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order with its items.
	// A missing order fails with errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
