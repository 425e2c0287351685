package queries

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// ProductReader loads the products a cart refers to. Unknown ids are left
// out of the result.
type ProductReader interface {
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error)
}

// QuoteCartQueryHandler prices a cart with the checkout rules used at
// placement, so a quote and the order placed from it agree.
type QuoteCartQueryHandler struct {
	products ProductReader
	checkout services.Checkout
	taxRate  decimal.Decimal
}

func NewQuoteCartQueryHandler(
	products ProductReader,
	checkout services.Checkout,
	taxRate decimal.Decimal,
) QuoteCartQueryHandler {
	return QuoteCartQueryHandler{products: products, checkout: checkout, taxRate: taxRate}
}

func (h QuoteCartQueryHandler) Handle(ctx context.Context, query QuoteCartQuery) (QuoteCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteCartQueryResponse{}, err
	}

	products, err := h.products.GetMany(ctx, query.productIDs())
	if err != nil {
		return QuoteCartQueryResponse{}, err
	}

	quote, err := h.checkout.Quote(query.Cart(), products, h.taxRate)
	if err != nil {
		return QuoteCartQueryResponse{}, err
	}

	items := make([]OrderItemView, 0, len(quote.Items))
	for _, it := range quote.Items {
		items = append(items, OrderItemView{
			ProductID:   it.ProductID(),
			ProductName: it.ProductName(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.Price(),
			LineTotal:   it.LineTotal(),
		})
	}

	return QuoteCartQueryResponse{Items: items, Totals: quote.Totals}, nil
}
