package categoryrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCategoryRepository implements ports.CategoryRepository using GORM.
type GormCategoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCategoryRepository(db *gorm.DB, tracker aggregateTracker) *GormCategoryRepository {
	return &GormCategoryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCategoryRepository) Add(ctx context.Context, category catalog.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	dto := fromDomain(category)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("slug", err)
		}
		return err
	}

	r.tracker.TrackAggregate(category.ID(), category)
	return nil
}

func (r *GormCategoryRepository) Get(ctx context.Context, id kernel.UUID) (catalog.Category, error) {
	if err := id.Validate(); err != nil {
		return catalog.Category{}, err
	}

	var dto CategoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Category{}, errs.NewObjectNotFoundError("category", id.String())
		}
		return catalog.Category{}, err
	}

	return toDomain(dto)
}

func (r *GormCategoryRepository) GetAll(ctx context.Context) ([]catalog.Category, error) {
	var dtos []CategoryDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, nil
}
