// Package serializer turns a one-pass sequence of rows into worksheet XML
// fragments, choosing a pure streaming protocol or a single buffered pass
// depending on whether column-width output is required.
package serializer

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// excelEpoch is day zero of the Excel serial date system. Excel counts
// 1900-01-01 as day 1 and wrongly treats 1900 as a leap year, which the
// 1899-12-30 epoch absorbs for all dates from 1900-03-01 on.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialDate converts a time to its Excel serial day number, with the time
// of day as the fractional part. Dates before the epoch produce negative
// serials; this is accepted, not validated.
func SerialDate(t time.Time) float64 {
	return float64(t.UnixMilli()-excelEpoch.UnixMilli()) / (24 * 60 * 60 * 1000)
}

// FormatNumber renders a float as spreadsheet value text using the shortest
// representation that round-trips.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// displayWidth is the rendered character-width heuristic used for column
// width auto-detection: the number of runes in the cell's textual form.
func displayWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text))
}
