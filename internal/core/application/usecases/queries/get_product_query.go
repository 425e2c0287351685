package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetProductQueryIsNotConstructed = errors.New(
	"GetProductQuery must be created via NewGetProductQuery constructor",
)

// GetProductQuery fetches a product page: catalog fields, reviews and the
// average rating derived from them.
type GetProductQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProductQuery(productID kernel.UUID) (GetProductQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, err
	}
	return GetProductQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

func (q GetProductQuery) ProductID() kernel.UUID { return q.productID }

// GetProductQueryResponse carries the price a customer pays now in
// EffectivePrice; SalePrice is nil when the product is not discounted.
type GetProductQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Slug           string
	Description    string
	Price          kernel.Money
	SalePrice      *kernel.Money
	EffectivePrice kernel.Money
	Images         []string
	CategoryID     kernel.UUID
	Stock          int
	Featured       bool
	Specifications map[string]string
	Reviews        []ReviewView
	AverageRating  float64
}

type ReviewView struct {
	ID       kernel.UUID
	UserName string
	Rating   int
	Comment  string
	Date     time.Time
}
