// Package models defines data structures for worksheet serialization.
package models

// CellType tags the value kind of a cell.
type CellType string

const (
	// TypeString marks a textual cell.
	TypeString CellType = "string"
	// TypeNumber marks a numeric cell.
	TypeNumber CellType = "number"
	// TypeBoolean marks a boolean cell.
	TypeBoolean CellType = "boolean"
	// TypeDate marks a date cell.
	TypeDate CellType = "date"
	// TypeError marks an error-literal cell.
	TypeError CellType = "error"
)

// Cell is a single input cell: a value plus an optional explicit type tag.
// Value may be a string, a numeric type (int, int64, float64), a bool, a
// time.Time, or nil for an empty cell. When Type is empty the type is
// inferred from the value.
type Cell struct {
	// Value is the cell payload.
	Value interface{}
	// Type optionally overrides type inference.
	Type CellType
}

// ResolvedCell is a cell reduced to a type tag and one literal payload,
// ready for XML encoding. Numbers and dates are already rendered as text
// (dates as their Excel serial day number).
type ResolvedCell struct {
	// Kind is the resolved value kind.
	Kind CellType
	// Text is the literal payload.
	Text string
}
