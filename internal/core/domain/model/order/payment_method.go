package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrPaymentMethodIsNotConstructed = errors.New("PaymentMethod must be created via NewPaymentMethod constructor")

// PaymentKind names how the customer paid.
type PaymentKind string

const (
	Card           PaymentKind = "card"
	CashOnDelivery PaymentKind = "cash_on_delivery"
	BankTransfer   PaymentKind = "bank_transfer"
)

func (k PaymentKind) Validate() error {
	switch k {
	case Card, CashOnDelivery, BankTransfer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(k)))
	}
}

// PaymentMethod records the confirmed payment. Reference is the gateway
// reference and is mandatory for every kind except cash on delivery.
type PaymentMethod struct {
	kind      PaymentKind
	reference string

	guard guard.ConstructorGuard
}

func NewPaymentMethod(kind PaymentKind, reference string) (PaymentMethod, error) {
	if err := kind.Validate(); err != nil {
		return PaymentMethod{}, err
	}

	reference = strings.TrimSpace(reference)
	if reference == "" && kind != CashOnDelivery {
		return PaymentMethod{}, errs.NewValueIsRequiredError("payment reference")
	}

	return PaymentMethod{
		kind:      kind,
		reference: reference,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p PaymentMethod) Validate() error {
	return p.guard.Validate(ErrPaymentMethodIsNotConstructed)
}

func (p PaymentMethod) Kind() PaymentKind {
	return p.kind
}

func (p PaymentMethod) Reference() string {
	return p.reference
}
