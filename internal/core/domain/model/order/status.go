package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Status is the position of an order in its fulfillment lifecycle.
//
//	Received ──> Processing ──> Shipped ──> Delivered
//
// The numeric order of the constants is the lifecycle order.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Received is set when payment is confirmed. It is the only status in
	// which the order contents may still change.
	Received

	// Processing means the order is being picked and packed.
	Processing

	// Shipped means the order left the warehouse.
	Shipped

	// Delivered is terminal.
	Delivered
)

var statusNames = map[Status]string{
	Received:   "received",
	Processing: "processing",
	Shipped:    "shipped",
	Delivered:  "delivered",
}

// ParseStatus reads the lower-case name used by the API and the database.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition exists.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// IsMutable reports whether items, address and payment method may change.
func (s Status) IsMutable() bool {
	return s == Received
}

// Next returns the immediate successor.
func (s Status) Next() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is terminal", s),
		)
	}
	return s + 1, nil
}

// AdvanceTo validates a transition towards target.
//
//   - target is the immediate successor: returns target
//   - target was already reached (equal to or behind s): returns s unchanged
//   - anything else, including skipping a state: returns an error
//
// The second case keeps retries of the same advance call safe.
func (s Status) AdvanceTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if target <= s {
		return s, nil
	}

	next, err := s.Next()
	if err != nil {
		return Unknown, err
	}
	if target != next {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s cannot advance to %s, next status is %s", s, target, next),
		)
	}

	return target, nil
}
