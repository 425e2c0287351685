// Package services provides domain services spanning the catalog and order
// aggregates.
//
// The package includes:
//   - Checkout: turns a cart into priced order items using the catalog's
//     current effective prices, checks and reserves stock, and builds the
//     Order once payment has been confirmed
package services
