package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrder         = errors.New("order is invalid")
	ErrUnsupportedOperation = errors.New("operation is not supported")
	ErrOrderLocked          = errors.New("order is locked")
	ErrInvalidReview        = errors.New("review is invalid")
)

// InvalidOrderError reports malformed cart or order input.
type InvalidOrderError struct {
	Reason string
	Cause  error
}

func NewInvalidOrderError(reason string) *InvalidOrderError {
	return &InvalidOrderError{Reason: reason}
}

func NewInvalidOrderErrorWithCause(reason string, cause error) *InvalidOrderError {
	return &InvalidOrderError{Reason: reason, Cause: cause}
}

func (e *InvalidOrderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidOrder, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidOrder, e.Reason)
}

func (e *InvalidOrderError) Unwrap() error {
	return ErrInvalidOrder
}

// UnsupportedOperationError reports an attempt to leave the order lifecycle,
// such as cancellation or a refund-triggered rollback. Orders are never
// cancelled once payment has been confirmed.
type UnsupportedOperationError struct {
	Operation string
	Status    string
}

func NewUnsupportedOperationError(operation, status string) *UnsupportedOperationError {
	return &UnsupportedOperationError{Operation: operation, Status: status}
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %s is not allowed in %s status", ErrUnsupportedOperation, e.Operation, e.Status)
}

func (e *UnsupportedOperationError) Unwrap() error {
	return ErrUnsupportedOperation
}

// OrderLockedError reports a mutation of a field that froze when the order
// left the Received status.
type OrderLockedError struct {
	OrderID any
	Field   string
	Status  string
}

func NewOrderLockedError(orderID any, field, status string) *OrderLockedError {
	return &OrderLockedError{OrderID: orderID, Field: field, Status: status}
}

func (e *OrderLockedError) Error() string {
	return fmt.Sprintf("%s: %s of order %s cannot change in %s status", ErrOrderLocked, e.Field, e.OrderID, e.Status)
}

func (e *OrderLockedError) Unwrap() error {
	return ErrOrderLocked
}

// InvalidReviewError reports a review that cannot be appended to a product.
type InvalidReviewError struct {
	Reason string
	Cause  error
}

func NewInvalidReviewError(reason string) *InvalidReviewError {
	return &InvalidReviewError{Reason: reason}
}

func NewInvalidReviewErrorWithCause(reason string, cause error) *InvalidReviewError {
	return &InvalidReviewError{Reason: reason, Cause: cause}
}

func (e *InvalidReviewError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidReview, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidReview, e.Reason)
}

func (e *InvalidReviewError) Unwrap() error {
	return ErrInvalidReview
}
