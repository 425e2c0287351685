package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetProductQueryHandler reads a product and its reviews. The average is
// recomputed from the review rows on every call, never read from a cache.
//
// Example:
//
//	handler := NewGetProductQueryHandler(db)
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s %s (%s stars)\n", page.Name, page.EffectivePrice, catalog.FormatRating(page.AverageRating))
type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (GetProductQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductQueryResponse{}, err
	}

	var (
		resp           GetProductQueryResponse
		categoryID     uuid.UUID
		price          int64
		salePrice      sql.NullInt64
		images         datatypes.JSONSlice[string]
		specifications datatypes.JSONType[map[string]string]
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			slug,
			description,
			price_cents,
			sale_price_cents,
			images,
			category_id,
			stock,
			featured,
			specifications
		FROM products
		WHERE id = ?
	`, query.ProductID().Bytes()).Row().Scan(
		&resp.Name,
		&resp.Slug,
		&resp.Description,
		&price,
		&salePrice,
		&images,
		&categoryID,
		&resp.Stock,
		&resp.Featured,
		&specifications,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetProductQueryResponse{}, errs.NewObjectNotFoundError("product", query.ProductID().String())
	}
	if err != nil {
		return GetProductQueryResponse{}, err
	}

	resp.ID = query.ProductID()
	if resp.CategoryID, err = kernel.UUIDFromBytes(categoryID[:]); err != nil {
		return GetProductQueryResponse{}, err
	}
	if resp.Price, err = kernel.NewMoneyFromCents(price); err != nil {
		return GetProductQueryResponse{}, err
	}
	resp.EffectivePrice = resp.Price
	if salePrice.Valid {
		sale, saleErr := kernel.NewMoneyFromCents(salePrice.Int64)
		if saleErr != nil {
			return GetProductQueryResponse{}, saleErr
		}
		resp.SalePrice = &sale
		resp.EffectivePrice = sale
	}

	resp.Images = []string(images)
	if resp.Images == nil {
		resp.Images = []string{}
	}
	resp.Specifications = specifications.Data()
	if resp.Specifications == nil {
		resp.Specifications = map[string]string{}
	}

	reviews, err := h.reviews(ctx, query.ProductID())
	if err != nil {
		return GetProductQueryResponse{}, err
	}

	resp.Reviews = make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, ReviewView{
			ID:       r.ID(),
			UserName: r.UserName(),
			Rating:   r.Rating().Int(),
			Comment:  r.Comment(),
			Date:     r.Date(),
		})
	}
	resp.AverageRating = catalog.AverageRating(reviews)

	return resp, nil
}

// reviews rebuilds domain reviews so the average goes through the same
// rounding as the aggregate.
func (h GetProductQueryHandler) reviews(ctx context.Context, productID kernel.UUID) ([]catalog.Review, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			user_name,
			rating,
			comment,
			date
		FROM product_reviews
		WHERE product_id = ?
		ORDER BY date, id
	`, productID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]catalog.Review, 0)
	for rows.Next() {
		var (
			id, userID        uuid.UUID
			userName, comment string
			rating            int
			date              time.Time
		)
		if err = rows.Scan(&id, &userID, &userName, &rating, &comment, &date); err != nil {
			return nil, err
		}

		reviewID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		authorID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}

		review, reviewErr := catalog.NewReview(reviewID, authorID, userName, rating, comment, date)
		if reviewErr != nil {
			return nil, reviewErr
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}
