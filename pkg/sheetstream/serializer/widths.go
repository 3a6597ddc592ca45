package serializer

import (
	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
)

// WidthTracker accumulates the maximum rendered display width seen per
// column across streamed cells. A tracker constructed disabled is a
// zero-cost no-op, which is what lets the fast serialization path skip all
// width bookkeeping.
type WidthTracker struct {
	enabled bool
	widths  map[int]float64
}

// NewWidthTracker creates a tracker. When enabled is false every update is
// a no-op and Widths returns an empty map.
func NewWidthTracker(enabled bool) *WidthTracker {
	t := &WidthTracker{enabled: enabled}
	if enabled {
		t.widths = make(map[int]float64)
	}
	return t
}

// Update records the display width of a resolved cell for the given 0-based
// column, keeping the running maximum.
func (t *WidthTracker) Update(col int, rc models.ResolvedCell) {
	if !t.enabled {
		return
	}
	w := displayWidth(rc.Text)
	if w > t.widths[col] {
		t.widths[col] = w
	}
}

// Width returns the tracked width for a column, if any.
func (t *WidthTracker) Width(col int) (float64, bool) {
	if !t.enabled {
		return 0, false
	}
	w, ok := t.widths[col]
	return w, ok
}

// Widths returns the full column index to width mapping accumulated so far.
func (t *WidthTracker) Widths() map[int]float64 {
	if !t.enabled {
		return map[int]float64{}
	}
	return t.widths
}
