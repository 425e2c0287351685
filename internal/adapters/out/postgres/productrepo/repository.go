package productrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormProductRepository) Add(ctx context.Context, aggregate *catalog.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("slug", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.withReviews(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.withReviews(ctx).Where("id IN ?", raw).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// UpdateStock is a compare-and-swap on the stock column.
func (r *GormProductRepository) UpdateStock(ctx context.Context, aggregate *catalog.Product, expected int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND stock = ?", aggregate.ID().Bytes(), expected).
		Update("stock", aggregate.Stock())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("product", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AddReview inserts one review row. The unique (product, user) index turns a
// concurrent duplicate into InvalidReviewError.
func (r *GormProductRepository) AddReview(ctx context.Context, productID kernel.UUID, review catalog.Review) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if err := review.Validate(); err != nil {
		return errs.NewInvalidReviewErrorWithCause("review", err)
	}

	dto := reviewFromDomain(productID.Bytes(), review)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return errs.NewInvalidReviewErrorWithCause("review", err)
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return errs.NewObjectNotFoundErrorWithCause("product", productID.String(), err)
		default:
			return err
		}
	}

	return nil
}

func (r *GormProductRepository) withReviews(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("date, id")
	})
}
