package kernel

import (
	"fmt"
	"math"

	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// centsPerUnit is the number of minor units in one currency unit.
const centsPerUnit = 100

// Money is a non-negative amount held as integer cents so that sums and
// products never accumulate binary floating point drift.
type Money struct {
	cents int64
}

// Zero is the empty amount.
var Zero = Money{}

var maxCents = decimal.NewFromInt(math.MaxInt64)

func outOfRange(value any) error {
	return errs.NewValueIsOutOfRangeError("money", value, "0.00", decimal.New(math.MaxInt64, -2).StringFixed(2))
}

// NewMoneyFromCents builds an amount from minor units.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// MustMoneyFromCents is NewMoneyFromCents for constants and tests.
func MustMoneyFromCents(cents int64) Money {
	m, err := NewMoneyFromCents(cents)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney reads a decimal string such as "12.50". More than two fractional
// digits are rounded half-up to cents.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoneyFromDecimal(d)
}

// NewMoneyFromDecimal converts a currency-unit decimal to cents, rounding half-up.
func NewMoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%s is negative", d.String()))
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return Money{}, outOfRange(d.String())
	}
	return Money{cents: cents.IntPart()}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

// Add fails with ValueIsOutOfRangeError when the sum does not fit in int64 cents.
func (m Money) Add(other Money) (Money, error) {
	if other.cents > math.MaxInt64-m.cents {
		return Money{}, outOfRange(m.Decimal().Add(other.Decimal()).StringFixed(2))
	}
	return Money{cents: m.cents + other.cents}, nil
}

// Times multiplies by a non-negative quantity. An overflowing product fails
// with ValueIsOutOfRangeError.
func (m Money) Times(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	if quantity > 0 && m.cents > math.MaxInt64/int64(quantity) {
		return Money{}, outOfRange(m.Decimal().Mul(decimal.NewFromInt(int64(quantity))).StringFixed(2))
	}
	return Money{cents: m.cents * int64(quantity)}, nil
}

// MulRate multiplies by a non-negative rate (for example a tax rate of 0.07)
// and rounds the result half-up to whole cents.
func (m Money) MulRate(rate decimal.Decimal) (Money, error) {
	return NewMoneyFromDecimal(m.Decimal().Mul(rate))
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// String formats the amount with exactly two decimals, e.g. "29.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
