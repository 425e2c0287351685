package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
)

// ProductRepository defines the persistence contract for product aggregates
// and their reviews.
type ProductRepository interface {
	// Add persists a new product. Reviews are stored through AddReview.
	Add(ctx context.Context, aggregate *catalog.Product) error

	// Get retrieves a product with its full review history.
	// A missing product fails with errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	// GetMany retrieves the products with the given ids. Unknown ids are
	// skipped; the caller decides whether that is an error.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error)

	// UpdateStock writes the product's current stock only if the stored
	// stock still equals expected. A lost race fails with
	// errs.ConcurrentModificationError.
	UpdateStock(ctx context.Context, aggregate *catalog.Product, expected int) error

	// AddReview appends one review row. The product must exist.
	AddReview(ctx context.Context, productID kernel.UUID, review catalog.Review) error
}

// CategoryRepository defines the persistence contract for product categories.
type CategoryRepository interface {
	Add(ctx context.Context, category catalog.Category) error

	// Get fails with errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (catalog.Category, error)

	// GetAll returns the whole category tree, roots and children alike.
	GetAll(ctx context.Context) ([]catalog.Category, error)
}
