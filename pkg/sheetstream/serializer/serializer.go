package serializer

import (
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
)

// NSSpreadsheetML is the namespace of the worksheet document.
const NSSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

const (
	xmlProlog     = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
	worksheetOpen = `<worksheet xmlns="` + NSSpreadsheetML + `">`
)

// StringResolver maps a string to a stable non-negative shared-string index.
// A nil resolver makes the serializer emit inline strings instead.
type StringResolver func(s string) int

// Options configures a Serializer invocation.
type Options struct {
	// SharedStrings resolves textual cells to shared-string indices. Nil
	// means inline strings.
	SharedStrings StringResolver
	// AutoDetectColumnWidth turns on width auto-detection for all columns.
	AutoDetectColumnWidth bool
	// ColumnWidths holds explicit per-column and per-range width
	// definitions. Malformed definitions are skipped, not rejected.
	ColumnWidths []models.ColumnWidth
	// DefaultColumnWidth, when set, is declared as the sheet default and
	// used as the fallback for columns no other rule covers.
	DefaultColumnWidth *float64
	// Logger receives debug events. Nil means no logging.
	Logger *zap.Logger
}

// Serializer emits one worksheet document as an ordered sequence of XML
// text fragments. The serialization protocol is decided once per call to
// Serialize: when no per-column width output is required the rows stream
// through with O(1) memory; otherwise every row is buffered so the column
// extent and auto-detected widths are known before the width block is
// written.
type Serializer struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Serializer with the given options.
func New(opts Options) *Serializer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Serializer{opts: opts, logger: logger}
}

// Serialize consumes the row sequence once and yields worksheet XML
// fragments in document order. The concatenated fragments form one
// well-formed <worksheet> document. Abandoning the returned sequence early
// leaks nothing; the serializer holds no external resources.
func (s *Serializer) Serialize(rows iter.Seq[models.Row]) iter.Seq[string] {
	if s.needsColumnWidths() {
		s.logger.Debug("serializing with buffered pass", zap.Int("widthDefs", len(s.opts.ColumnWidths)))
		return s.serializeBuffered(rows)
	}
	s.logger.Debug("serializing with streaming pass")
	return s.serializeStreaming(rows)
}

// needsColumnWidths reports whether any per-column width output is required.
// A default column width alone does not: it is declared on the sheet and
// needs no knowledge of the column extent.
func (s *Serializer) needsColumnWidths() bool {
	return s.opts.AutoDetectColumnWidth || len(s.opts.ColumnWidths) > 0
}

func (s *Serializer) serializeStreaming(rows iter.Seq[models.Row]) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(xmlProlog) {
			return
		}
		if !yield(worksheetOpen) {
			return
		}
		if s.opts.DefaultColumnWidth != nil {
			if !yield(sheetFormatPr(*s.opts.DefaultColumnWidth)) {
				return
			}
		}
		if !yield("<sheetData>") {
			return
		}
		for row := range rows {
			if !yield(s.serializeRow(row)) {
				return
			}
		}
		yield("</sheetData></worksheet>")
	}
}

func (s *Serializer) serializeBuffered(rows iter.Seq[models.Row]) iter.Seq[string] {
	return func(yield func(string) bool) {
		tracker := NewWidthTracker(s.trackingEnabled())
		var buffered []models.Row
		minCol, maxCol := -1, -1
		for row := range rows {
			buffered = append(buffered, row)
			for col, cell := range row.Cells {
				if cell == nil {
					continue
				}
				if minCol < 0 || col < minCol {
					minCol = col
				}
				if col > maxCol {
					maxCol = col
				}
				tracker.Update(col, ResolveCell(cell))
			}
		}

		if !yield(xmlProlog) {
			return
		}
		if !yield(worksheetOpen) {
			return
		}
		if s.opts.DefaultColumnWidth != nil {
			if !yield(sheetFormatPr(*s.opts.DefaultColumnWidth)) {
				return
			}
		}
		if block := s.columnWidthBlock(tracker, minCol, maxCol); block != "" {
			if !yield(block) {
				return
			}
		}
		if !yield("<sheetData>") {
			return
		}
		for _, row := range buffered {
			if !yield(s.serializeRow(row)) {
				return
			}
		}
		yield("</sheetData></worksheet>")
	}
}

// trackingEnabled reports whether any width rule can consume auto-detected
// widths, which is the only reason to pay for tracking during buffering.
func (s *Serializer) trackingEnabled() bool {
	if s.opts.AutoDetectColumnWidth {
		return true
	}
	for _, cw := range s.opts.ColumnWidths {
		if cw.AutoDetect {
			return true
		}
	}
	return false
}

// colDecl is one emitted <col> declaration over a 1-based inclusive span.
type colDecl struct {
	min, max int
	width    float64
}

// columnWidthBlock computes the <cols> block. Precedence, each step only
// touching columns not yet covered by an earlier one:
//  1. explicit single-column definitions, first definition per index wins
//  2. range definitions: per-column declarations from tracked widths when
//     auto-detecting, one span-wide declaration when an explicit width is set
//  3. tracked widths for remaining observed columns
//  4. the default width for observed columns still uncovered (only when a
//     tracking rule was in play; otherwise uncovered columns stay implicit)
//  5. when nothing at all was declared but a default width is configured,
//     a single declaration spanning the observed column extent
func (s *Serializer) columnWidthBlock(tracker *WidthTracker, minCol, maxCol int) string {
	covered := make(map[int]bool)
	var decls []colDecl

	for _, cw := range s.opts.ColumnWidths {
		if !cw.Valid() || cw.Column == nil {
			continue
		}
		col := *cw.Column
		if covered[col] {
			continue
		}
		if w, ok := definitionWidth(cw, tracker, col); ok {
			decls = append(decls, colDecl{min: col + 1, max: col + 1, width: w})
			covered[col] = true
		}
	}

	for _, cw := range s.opts.ColumnWidths {
		if !cw.Valid() || cw.Range == nil {
			continue
		}
		r := *cw.Range
		switch {
		case cw.AutoDetect:
			for col := r.From; col <= r.To; col++ {
				if covered[col] {
					continue
				}
				if w, ok := tracker.Width(col); ok {
					decls = append(decls, colDecl{min: col + 1, max: col + 1, width: w})
					covered[col] = true
				}
			}
		case cw.Width != nil:
			decls = append(decls, colDecl{min: r.From + 1, max: r.To + 1, width: *cw.Width})
			for col := r.From; col <= r.To; col++ {
				covered[col] = true
			}
		}
	}

	if tracker.enabled {
		for col := 0; col <= maxCol; col++ {
			if covered[col] {
				continue
			}
			if w, ok := tracker.Width(col); ok {
				decls = append(decls, colDecl{min: col + 1, max: col + 1, width: w})
				covered[col] = true
			} else if s.opts.DefaultColumnWidth != nil {
				decls = append(decls, colDecl{min: col + 1, max: col + 1, width: *s.opts.DefaultColumnWidth})
				covered[col] = true
			}
		}
	}

	if len(decls) == 0 {
		if s.opts.DefaultColumnWidth == nil || minCol < 0 {
			return ""
		}
		decls = append(decls, colDecl{min: minCol + 1, max: maxCol + 1, width: *s.opts.DefaultColumnWidth})
	}

	var b strings.Builder
	b.WriteString("<cols>")
	for _, d := range decls {
		fmt.Fprintf(&b, `<col min="%d" max="%d" width="%s" customWidth="1"/>`, d.min, d.max, FormatNumber(d.width))
	}
	b.WriteString("</cols>")
	return b.String()
}

// definitionWidth resolves a single-column definition to a width: the
// explicit width if set, else the tracked width when auto-detecting. A
// definition resolving to nothing is skipped and falls through to the later
// steps.
func definitionWidth(cw models.ColumnWidth, tracker *WidthTracker, col int) (float64, bool) {
	if cw.Width != nil {
		return *cw.Width, true
	}
	if cw.AutoDetect {
		return tracker.Width(col)
	}
	return 0, false
}

// serializeRow renders one <row> element. The spans attribute covers the
// inclusive 1-based range from the first to the last present cell; interior
// holes are skipped but do not shrink the span.
func (s *Serializer) serializeRow(row models.Row) string {
	rowIdx := row.RowIndex()
	first, last := -1, -1
	for col, cell := range row.Cells {
		if cell == nil {
			continue
		}
		if first < 0 {
			first = col
		}
		last = col
	}
	if first < 0 {
		return fmt.Sprintf(`<row r="%d"/>`, rowIdx)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<row r="%d" spans="%d:%d">`, rowIdx, first+1, last+1)
	for col, cell := range row.Cells {
		if cell == nil {
			continue
		}
		s.writeCell(&b, col, rowIdx, ResolveCell(cell))
	}
	b.WriteString("</row>")
	return b.String()
}

// writeCell renders one <c> element. Textual cells go through the shared
// string resolver when one is supplied, otherwise inline. All other kinds
// are literal value cells, typed explicitly except numbers, which are the
// implicit default.
func (s *Serializer) writeCell(b *strings.Builder, col, rowIdx int, rc models.ResolvedCell) {
	ref := CellRef(col, rowIdx)
	switch rc.Kind {
	case models.TypeString:
		if s.opts.SharedStrings != nil {
			fmt.Fprintf(b, `<c r="%s" s="0" t="s"><v>%d</v></c>`, ref, s.opts.SharedStrings(rc.Text))
		} else {
			fmt.Fprintf(b, `<c r="%s" s="0" t="inlineStr"><is><t>%s</t></is></c>`, ref, EscapeText(rc.Text))
		}
	case models.TypeNumber:
		fmt.Fprintf(b, `<c r="%s" s="0"><v>%s</v></c>`, ref, rc.Text)
	case models.TypeBoolean:
		fmt.Fprintf(b, `<c r="%s" s="0" t="b"><v>%s</v></c>`, ref, rc.Text)
	case models.TypeDate:
		fmt.Fprintf(b, `<c r="%s" s="0" t="d"><v>%s</v></c>`, ref, rc.Text)
	case models.TypeError:
		fmt.Fprintf(b, `<c r="%s" s="0" t="e"><v>%s</v></c>`, ref, EscapeText(rc.Text))
	}
}

func sheetFormatPr(defaultWidth float64) string {
	return fmt.Sprintf(`<sheetFormatPr defaultColWidth="%s"/>`, FormatNumber(defaultWidth))
}
