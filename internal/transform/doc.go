// Package transform defines the cleaning steps applied to a customer table.
// Each Step mutates the table in place and reports how many cells (or rows)
// it changed; the Runner applies the list returned by Default in order.
package transform
