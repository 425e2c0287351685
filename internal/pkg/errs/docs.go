// Package errs provides the error taxonomy of the storefront core.
//
// Generic validation failures:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value breaks a domain rule
//   - ValueIsOutOfRangeError: a value lies outside of its bounds
//   - ObjectNotFoundError: a lookup by identifier matched nothing
//   - ObjectAlreadyExistsError: an insert reused a taken identifier
//   - ConcurrentModificationError: a compare-and-swap write lost the race
//
// Order and catalog policy failures:
//   - InvalidOrderError: malformed cart input
//   - UnsupportedOperationError: cancellation or refund attempts
//   - OrderLockedError: mutation after payment confirmation moved on
//   - InvalidReviewError: rating out of range or duplicate review
//
// Every error type follows the same pattern: a sentinel variable, a struct
// carrying the details, New... constructors, Error() and an Unwrap() that
// returns the sentinel so callers can classify with errors.Is.
package errs
