// Package queries contains the read side of the storefront. Query handlers
// read straight from the database into view models shaped for the HTTP
// adapter and the jobs; they never load aggregates for writing.
package queries
