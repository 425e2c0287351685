// Package guard lets value objects detect that they were built by their
// constructor rather than declared as zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field. Only NewConstructorGuard
// sets the flag, so a zero-value struct fails Validate.
//
// Example:
//
//	type QuoteCartQuery struct {
//	    lines []CartLine
//	    guard guard.ConstructorGuard
//	}
//
//	func (q QuoteCartQuery) Validate() error {
//	    return q.guard.Validate(ErrQuoteCartQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
