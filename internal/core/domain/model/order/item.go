package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line. Price is the unit price at order time and never
// follows later catalog changes.
type Item struct {
	productID   kernel.UUID
	productName string
	quantity    int
	price       kernel.Money
	lineTotal   kernel.Money

	guard guard.ConstructorGuard
}

// NewItem fails with InvalidOrderError on a missing product reference,
// an empty name, a non-positive quantity or a line total too large to hold.
func NewItem(productID kernel.UUID, productName string, quantity int, price kernel.Money) (Item, error) {
	productName = strings.TrimSpace(productName)

	var problems []error
	if err := productID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if productName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("product name"))
	}
	if quantity <= 0 {
		problems = append(problems, fmt.Errorf("quantity %d is not greater than 0", quantity))
	}
	if len(problems) > 0 {
		return Item{}, errs.NewInvalidOrderErrorWithCause("item", errors.Join(problems...))
	}

	lineTotal, err := price.Times(quantity)
	if err != nil {
		return Item{}, errs.NewInvalidOrderErrorWithCause(productName, err)
	}

	return Item{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		price:       price,
		lineTotal:   lineTotal,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.UUID  { return i.productID }
func (i Item) ProductName() string     { return i.productName }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) Price() kernel.Money     { return i.price }
func (i Item) LineTotal() kernel.Money { return i.lineTotal }

// Line adapts the item for the pricing engine.
func (i Item) Line() pricing.Line {
	return pricing.Line{UnitPrice: i.price, Quantity: i.quantity}
}

func lines(items []Item) []pricing.Line {
	out := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		out = append(out, it.Line())
	}
	return out
}
