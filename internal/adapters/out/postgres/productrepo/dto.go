// Package productrepo maps product aggregates onto the products and
// product_reviews tables. Images and specifications are stored as jsonb.
package productrepo

import (
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProductDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Slug           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description    string    `gorm:"type:text"`
	PriceCents     int64     `gorm:"not null"`
	SalePriceCents *int64
	Images         datatypes.JSONSlice[string]           `gorm:"type:jsonb"`
	CategoryID     uuid.UUID                             `gorm:"type:uuid;not null;index"`
	Stock          int                                   `gorm:"not null;check:stock >= 0"`
	Featured       bool                                  `gorm:"not null;default:false;index"`
	Specifications datatypes.JSONType[map[string]string] `gorm:"type:jsonb"`
	Reviews        []ReviewDTO                           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// ReviewDTO is one product_reviews row. The unique index backs the
// one-review-per-user rule enforced by the aggregate.
type ReviewDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_reviews_product_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_reviews_product_user"`
	UserName  string    `gorm:"type:varchar(255);not null"`
	Rating    int       `gorm:"type:smallint;not null;check:rating BETWEEN 1 AND 5"`
	Comment   string    `gorm:"type:text"`
	Date      time.Time `gorm:"not null;index"`
}

func (ReviewDTO) TableName() string {
	return "product_reviews"
}

func fromDomain(aggregate *catalog.Product) ProductDTO {
	productID := aggregate.ID().Bytes()

	var salePrice *int64
	if sale, ok := aggregate.SalePrice(); ok {
		cents := sale.Cents()
		salePrice = &cents
	}

	reviews := make([]ReviewDTO, 0, len(aggregate.Reviews()))
	for _, r := range aggregate.Reviews() {
		reviews = append(reviews, reviewFromDomain(productID, r))
	}

	return ProductDTO{
		ID:             productID,
		Name:           aggregate.Name(),
		Slug:           aggregate.Slug(),
		Description:    aggregate.Description(),
		PriceCents:     aggregate.Price().Cents(),
		SalePriceCents: salePrice,
		Images:         datatypes.NewJSONSlice(aggregate.Images()),
		CategoryID:     aggregate.CategoryID().Bytes(),
		Stock:          aggregate.Stock(),
		Featured:       aggregate.Featured(),
		Specifications: datatypes.NewJSONType(aggregate.Specifications()),
		Reviews:        reviews,
	}
}

func reviewFromDomain(productID uuid.UUID, r catalog.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID().Bytes(),
		ProductID: productID,
		UserID:    r.UserID().Bytes(),
		UserName:  r.UserName(),
		Rating:    r.Rating().Int(),
		Comment:   r.Comment(),
		Date:      r.Date(),
	}
}

func toDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoneyFromCents(dto.PriceCents)
	if err != nil {
		return nil, err
	}

	var salePrice *kernel.Money
	if dto.SalePriceCents != nil {
		sale, saleErr := kernel.NewMoneyFromCents(*dto.SalePriceCents)
		if saleErr != nil {
			return nil, saleErr
		}
		salePrice = &sale
	}

	reviews := make([]catalog.Review, 0, len(dto.Reviews))
	for _, reviewDTO := range dto.Reviews {
		r, reviewErr := reviewToDomain(reviewDTO)
		if reviewErr != nil {
			return nil, reviewErr
		}
		reviews = append(reviews, r)
	}

	return catalog.RestoreProduct(id, catalog.Attributes{
		Name:           dto.Name,
		Slug:           dto.Slug,
		Description:    dto.Description,
		Price:          price,
		SalePrice:      salePrice,
		Images:         dto.Images,
		CategoryID:     categoryID,
		Stock:          dto.Stock,
		Featured:       dto.Featured,
		Specifications: dto.Specifications.Data(),
	}, reviews)
}

func reviewToDomain(dto ReviewDTO) (catalog.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Review{}, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return catalog.Review{}, err
	}

	return catalog.NewReview(id, userID, dto.UserName, dto.Rating, dto.Comment, dto.Date)
}
