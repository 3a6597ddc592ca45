package models

// ColumnRange is an inclusive range of 0-based column indices.
type ColumnRange struct {
	// From is the first column of the range.
	From int
	// To is the last column of the range.
	To int
}

// ColumnWidth configures the width of a single column or a column range.
// Exactly one of Column and Range must be set; a definition with both or
// neither set is silently skipped during serialization. Width gives an
// explicit width; AutoDetect resolves the width from tracked cell content
// instead. A definition that yields neither falls through to default
// handling.
type ColumnWidth struct {
	// Column is a single 0-based column index.
	Column *int
	// Range is an inclusive 0-based column range.
	Range *ColumnRange
	// Width is the explicit width in character units.
	Width *float64
	// AutoDetect resolves the width from the widest cell seen.
	AutoDetect bool
}

// Valid reports whether the definition selects exactly one target and that
// target is well formed (non-negative indices, From <= To).
func (cw ColumnWidth) Valid() bool {
	if (cw.Column == nil) == (cw.Range == nil) {
		return false
	}
	if cw.Column != nil {
		return *cw.Column >= 0
	}
	return cw.Range.From >= 0 && cw.Range.From <= cw.Range.To
}
