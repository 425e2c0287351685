package kernel

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the delivery destination of an order.
type Address struct {
	recipient  string
	street     string
	city       string
	postalCode string
	phone      string

	guard guard.ConstructorGuard
}

// NewAddress trims every field; recipient, street, city and postal code are required.
func NewAddress(recipient, street, city, postalCode, phone string) (Address, error) {
	a := Address{
		recipient:  strings.TrimSpace(recipient),
		street:     strings.TrimSpace(street),
		city:       strings.TrimSpace(city),
		postalCode: strings.TrimSpace(postalCode),
		phone:      strings.TrimSpace(phone),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("recipient", a.recipient),
		required("street", a.street),
		required("city", a.city),
		required("postal code", a.postalCode),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Recipient() string  { return a.recipient }
func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Phone() string      { return a.phone }

func (a Address) IsEqual(other Address) bool {
	return a.recipient == other.recipient &&
		a.street == other.street &&
		a.city == other.city &&
		a.postalCode == other.postalCode &&
		a.phone == other.phone
}

func required(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
