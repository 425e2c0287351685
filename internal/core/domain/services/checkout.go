package services

import (
	"fmt"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CartLine is an explicit cart entry passed in by the presentation layer.
// There is no shared cart state; every quote starts from these values.
type CartLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// Quote is a priced cart.
type Quote struct {
	Items  []order.Item
	Totals pricing.Totals
}

// Checkout prices carts against the catalog and places orders.
//
// Business rules:
//   - every cart line must reference a known product
//   - lines for the same product are merged
//   - each item snapshots the product's effective (sale or regular) price
//   - requested quantities must be in stock
//
// Example usage:
//
//	checkout := services.NewCheckout(pricing.NewEngine(pricing.DefaultPolicy()))
//	quote, err := checkout.Quote(cart, products, decimal.Zero)
//	if errors.Is(err, errs.ErrInvalidOrder) {
//	    // show the cart error to the customer
//	}
type Checkout struct {
	engine pricing.Engine
}

func NewCheckout(engine pricing.Engine) Checkout {
	return Checkout{engine: engine}
}

func (c Checkout) Engine() pricing.Engine {
	return c.engine
}

// Quote prices the cart without changing any product.
func (c Checkout) Quote(cart []CartLine, products []*catalog.Product, taxRate decimal.Decimal) (Quote, error) {
	items, err := c.resolve(cart, products)
	if err != nil {
		return Quote{}, err
	}

	ls := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		ls = append(ls, it.Line())
	}

	totals, err := c.engine.ComputeTotals(ls, taxRate)
	if err != nil {
		return Quote{}, err
	}

	return Quote{Items: items, Totals: totals}, nil
}

// Place builds a Received order for a confirmed payment and reserves stock
// on the given products. The caller persists the order and the products in
// one transaction.
func (c Checkout) Place(
	orderID, userID kernel.UUID,
	cart []CartLine,
	products []*catalog.Product,
	address kernel.Address,
	payment order.PaymentMethod,
	taxRate decimal.Decimal,
	now time.Time,
) (*order.Order, error) {
	quote, err := c.Quote(cart, products, taxRate)
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(orderID, userID, quote.Items, address, payment, c.engine, taxRate, now)
	if err != nil {
		return nil, err
	}

	byID := index(products)
	for _, it := range quote.Items {
		if err = byID[it.ProductID()].ReserveStock(it.Quantity()); err != nil {
			return nil, err
		}
	}

	return placed, nil
}

func (c Checkout) resolve(cart []CartLine, products []*catalog.Product) ([]order.Item, error) {
	if len(cart) == 0 {
		return nil, errs.NewInvalidOrderError("at least one item is required")
	}

	byID := index(products)
	quantities := make(map[kernel.UUID]int, len(cart))
	var ordered []kernel.UUID

	for i, line := range cart {
		if line.Quantity <= 0 {
			return nil, errs.NewInvalidOrderErrorWithCause(
				fmt.Sprintf("item %d", i+1),
				fmt.Errorf("quantity %d is not greater than 0", line.Quantity),
			)
		}
		if _, ok := byID[line.ProductID]; !ok {
			return nil, errs.NewInvalidOrderErrorWithCause(
				fmt.Sprintf("item %d", i+1),
				errs.NewObjectNotFoundError("product", line.ProductID.String()),
			)
		}
		if _, seen := quantities[line.ProductID]; !seen {
			ordered = append(ordered, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	items := make([]order.Item, 0, len(ordered))
	for _, id := range ordered {
		p := byID[id]
		qty := quantities[id]
		if qty > p.Stock() {
			return nil, errs.NewInvalidOrderErrorWithCause(
				p.Name(),
				fmt.Errorf("only %d in stock, %d requested", p.Stock(), qty),
			)
		}

		it, err := order.NewItem(p.ID(), p.Name(), qty, p.EffectivePrice())
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, nil
}

func index(products []*catalog.Product) map[kernel.UUID]*catalog.Product {
	byID := make(map[kernel.UUID]*catalog.Product, len(products))
	for _, p := range products {
		if p.Validate() == nil {
			byID[p.ID()] = p
		}
	}
	return byID
}
