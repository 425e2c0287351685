package pricing

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one priced position: a unit price and a quantity.
type Line struct {
	UnitPrice kernel.Money
	Quantity  int
}

// Total returns UnitPrice x Quantity.
func (l Line) Total() (kernel.Money, error) {
	return l.UnitPrice.Times(l.Quantity)
}

// Totals is the result of pricing a set of lines.
type Totals struct {
	Subtotal    kernel.Money
	Tax         kernel.Money
	ShippingFee kernel.Money
	Total       kernel.Money
}

// Engine applies a Policy to priced lines.
//
// Example:
//
//	engine := pricing.NewEngine(pricing.DefaultPolicy())
//	totals, err := engine.ComputeTotals([]pricing.Line{
//	    {UnitPrice: kernel.MustMoneyFromCents(1200), Quantity: 2},
//	}, decimal.Zero)
//	// totals.Subtotal = 24.00, ShippingFee = 5.00, Tax = 0, Total = 29.00
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) Engine {
	return Engine{policy: policy}
}

func (e Engine) Policy() Policy {
	return e.policy
}

// ComputeTotals prices the lines. It fails with InvalidOrderError when there
// are no lines, a quantity is not positive, a unit price is negative, the
// tax rate is negative or an amount exceeds what Money can hold.
func (e Engine) ComputeTotals(lines []Line, taxRate decimal.Decimal) (Totals, error) {
	if err := validate(lines, taxRate); err != nil {
		return Totals{}, err
	}

	subtotal := kernel.Zero
	for i, l := range lines {
		lineTotal, err := l.Total()
		if err != nil {
			return Totals{}, errs.NewInvalidOrderErrorWithCause(fmt.Sprintf("item %d", i+1), err)
		}
		if subtotal, err = subtotal.Add(lineTotal); err != nil {
			return Totals{}, errs.NewInvalidOrderErrorWithCause("subtotal", err)
		}
	}

	tax, err := subtotal.MulRate(taxRate)
	if err != nil {
		return Totals{}, errs.NewInvalidOrderErrorWithCause("tax", err)
	}
	shipping := e.policy.ShippingFee(subtotal)

	total, err := subtotal.Add(tax)
	if err == nil {
		total, err = total.Add(shipping)
	}
	if err != nil {
		return Totals{}, errs.NewInvalidOrderErrorWithCause("total", err)
	}

	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		ShippingFee: shipping,
		Total:       total,
	}, nil
}

func validate(lines []Line, taxRate decimal.Decimal) error {
	if len(lines) == 0 {
		return errs.NewInvalidOrderError("at least one item is required")
	}
	for i, l := range lines {
		if l.Quantity <= 0 {
			return errs.NewInvalidOrderErrorWithCause(
				fmt.Sprintf("item %d", i+1),
				fmt.Errorf("quantity %d is not greater than 0", l.Quantity),
			)
		}
		if l.UnitPrice.Cents() < 0 {
			return errs.NewInvalidOrderErrorWithCause(
				fmt.Sprintf("item %d", i+1),
				fmt.Errorf("price %s is negative", l.UnitPrice),
			)
		}
	}
	if taxRate.IsNegative() {
		return errs.NewInvalidOrderErrorWithCause("tax rate", fmt.Errorf("%s is negative", taxRate))
	}
	return nil
}
