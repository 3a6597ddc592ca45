package models

// Row is an ordered, possibly sparse sequence of cells. A nil entry is a
// hole: no cell exists at that column. Column positions are 0-based.
type Row struct {
	// Cells holds the row's cells indexed by column; nil entries are holes.
	Cells []*Cell
	// Index is the 1-based row index in the output document. Zero means
	// unset and defaults to 1. Rows must arrive in non-decreasing index
	// order; output is append-only and this is not validated.
	Index int
}

// NewRow creates a Row over the given cell values, one cell per column in
// order. A nil value produces a hole rather than an empty cell.
func NewRow(values ...interface{}) Row {
	cells := make([]*Cell, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		cells[i] = &Cell{Value: v}
	}
	return Row{Cells: cells}
}

// RowIndex returns the effective 1-based row index.
func (r Row) RowIndex() int {
	if r.Index <= 0 {
		return 1
	}
	return r.Index
}
