// Package sheetstream writes OOXML spreadsheet packages from one-pass row
// sequences with bounded memory.
package sheetstream

import (
	"go.uber.org/zap"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
)

// Options configures workbook writing.
type Options struct {
	// SharedStrings deduplicates textual cells into the sharedStrings part
	// instead of embedding them inline.
	SharedStrings bool
	// PageSize is the disk page size for the shared-string table. Zero
	// means the package default.
	PageSize int
	// TempDir receives shared-string page files. Empty means a fresh
	// directory under the system temp dir. The directory is removed when
	// writing finishes, whether supplied or created.
	TempDir string
	// AutoDetectColumnWidth turns on width auto-detection for all columns
	// of every sheet.
	AutoDetectColumnWidth bool
	// ColumnWidths holds explicit width definitions, applied to every
	// sheet.
	ColumnWidths []models.ColumnWidth
	// DefaultColumnWidth, when set, is declared as the sheet default
	// width.
	DefaultColumnWidth *float64
	// Logger receives progress and debug events. Nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions returns default writing options: inline strings, no width
// output.
func DefaultOptions() Options {
	return Options{}
}

// logger returns the configured logger or a no-op one.
func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
