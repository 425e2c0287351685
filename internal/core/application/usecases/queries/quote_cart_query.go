package queries

import (
	"errors"
	"slices"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrQuoteCartQueryIsNotConstructed = errors.New(
	"QuoteCartQuery must be created via NewQuoteCartQuery constructor",
)

// QuoteCartQuery prices a cart supplied by the client. Nothing is
// reserved; the same cart may price differently once stock or sale prices
// change.
type QuoteCartQuery struct {
	cart []services.CartLine

	guard guard.ConstructorGuard
}

func NewQuoteCartQuery(cart []services.CartLine) (QuoteCartQuery, error) {
	if len(cart) == 0 {
		return QuoteCartQuery{}, errs.NewInvalidOrderError("at least one item is required")
	}
	return QuoteCartQuery{cart: slices.Clone(cart), guard: guard.NewConstructorGuard()}, nil
}

func (q QuoteCartQuery) Validate() error {
	return q.guard.Validate(ErrQuoteCartQueryIsNotConstructed)
}

func (q QuoteCartQuery) Cart() []services.CartLine { return slices.Clone(q.cart) }

func (q QuoteCartQuery) productIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(q.cart))
	for _, line := range q.cart {
		if !slices.Contains(ids, line.ProductID) {
			ids = append(ids, line.ProductID)
		}
	}
	return ids
}

// QuoteCartQueryResponse lists merged cart lines at their current prices.
type QuoteCartQueryResponse struct {
	Items  []OrderItemView
	Totals pricing.Totals
}
