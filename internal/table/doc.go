// Package table holds the in-memory customer table: ordered column names
// plus rows of null/text/boolean cells. A Table is owned by exactly one
// goroutine; steps mutate it in place.
package table
