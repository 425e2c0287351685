package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/catalog"
)

// AddProductReviewCommandHandler appends a review and returns the product's
// recomputed average rating.
type AddProductReviewCommandHandler struct {
	uowFactory CatalogUoWFactory
	now        func() time.Time
}

func NewAddProductReviewCommandHandler(uowFactory CatalogUoWFactory) AddProductReviewCommandHandler {
	return AddProductReviewCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h AddProductReviewCommandHandler) Handle(ctx context.Context, cmd AddProductReviewCommand) (float64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	review, err := catalog.NewReview(cmd.ReviewID(), cmd.UserID(), cmd.UserName(), cmd.Rating(), cmd.Comment(), h.now())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()

	product, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return 0, err
	}

	if err = product.AddReview(review); err != nil {
		return 0, err
	}

	if err = productRepo.AddReview(ctx, product.ID(), review); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return product.AverageRating(), nil
}
