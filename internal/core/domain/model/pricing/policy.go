package pricing

import (
	"storefront/internal/core/domain/model/kernel"
)

var (
	// DefaultFreeShippingThreshold is the subtotal from which delivery is free.
	DefaultFreeShippingThreshold = kernel.MustMoneyFromCents(3000)

	// DefaultFlatShippingFee is charged below the threshold.
	DefaultFlatShippingFee = kernel.MustMoneyFromCents(500)
)

// Policy holds the shipping-fee rules. Both amounts come from configuration
// so the currency or region can change without touching the algorithm.
type Policy struct {
	FreeShippingThreshold kernel.Money
	FlatShippingFee       kernel.Money
}

// DefaultPolicy returns the 30.00 / 5.00 policy the business currently runs.
func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: DefaultFreeShippingThreshold,
		FlatShippingFee:       DefaultFlatShippingFee,
	}
}

// ShippingFee returns the fee owed for the given subtotal.
func (p Policy) ShippingFee(subtotal kernel.Money) kernel.Money {
	if subtotal.LessThan(p.FreeShippingThreshold) {
		return p.FlatShippingFee
	}
	return kernel.Zero
}
