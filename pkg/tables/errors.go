// Package tables implements the columnar row storage backing a tree
// sequence: one table per kind, each row carrying fixed columns plus an
// opaque metadata byte column.
package tables

import "errors"

var (
	// ErrBadInterval indicates an edge or migration whose left coordinate
	// is not strictly less than its right coordinate.
	ErrBadInterval = errors.New("tables: bad genome interval")

	// ErrRowNotFound indicates a row id that refers to no row in the table.
	ErrRowNotFound = errors.New("tables: row not found")

	// ErrNegativePosition indicates a site position below zero.
	ErrNegativePosition = errors.New("tables: negative site position")
)
