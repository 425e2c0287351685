// Package kernel holds the value objects shared by the order and catalog
// aggregates: UUID identifiers, Money kept as integer cents, and the
// delivery Address. Values are immutable and safe for concurrent use.
package kernel
