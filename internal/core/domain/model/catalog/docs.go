// Package catalog holds the product catalog aggregates: categories arranged
// in a tree, products with their stock and pricing, and the append-only list
// of customer reviews from which a product's average rating is derived.
//
// The average rating is never stored. It is recomputed from the full review
// list with integer arithmetic and rounded half-up to one decimal place, so
// the same review sequence always yields the same value.
package catalog
