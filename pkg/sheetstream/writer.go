package sheetstream

import (
	"archive/zip"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/serializer"
	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/sharedstrings"
)

// Sheet pairs a sheet name with its single-pass row source.
type Sheet struct {
	// Name is the worksheet tab name.
	Name string
	// Rows yields the sheet's rows, in non-decreasing row index order.
	Rows iter.Seq[models.Row]
}

const (
	contentTypesHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/><Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>`

	worksheetContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	sharedStringsContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"

	rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/></Relationships>`

	// the constant placeholder stylesheet backing s="0" on every cell
	stylesPart = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><fonts count="1"><font><sz val="11"/><name val="Calibri"/></font></fonts><fills count="2"><fill><patternFill patternType="none"/></fill><fill><patternFill patternType="gray125"/></fill></fills><borders count="1"><border><left/><right/><top/><bottom/><diagonal/></border></borders><cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs><cellXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/></cellXfs><cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles></styleSheet>`
)

// Write writes a single-sheet workbook named "Sheet1" to w.
func Write(w io.Writer, rows iter.Seq[models.Row], opts Options) error {
	return WriteWorkbook(w, []Sheet{{Name: "Sheet1", Rows: rows}}, opts)
}

// WriteWorkbook assembles a complete .xlsx package: content types,
// relationships, workbook and styles parts, one streamed worksheet part per
// sheet, and the sharedStrings part when shared strings are enabled. Sheets
// are written in order; each row source is consumed exactly once.
func WriteWorkbook(w io.Writer, sheets []Sheet, opts Options) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}
	seen := make(map[string]bool, len(sheets))
	for _, sheet := range sheets {
		if seen[sheet.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateSheet, sheet.Name)
		}
		seen[sheet.Name] = true
	}
	logger := opts.logger()

	var table *sharedstrings.Table
	if opts.SharedStrings {
		dir := opts.TempDir
		if dir == "" {
			tmp, err := os.MkdirTemp("", "sheetstream-sst-")
			if err != nil {
				return fmt.Errorf("create shared string dir: %w", err)
			}
			dir = tmp
		}
		store := sharedstrings.NewDiskStore(dir, sharedstrings.DiskStoreOptions{
			PageSize: opts.PageSize,
			Logger:   logger,
		})
		table = sharedstrings.NewTable(store)
		defer table.Cleanup()
	}

	zw := zip.NewWriter(w)

	if err := writePart(zw, "[Content_Types].xml", contentTypes(len(sheets), opts.SharedStrings)); err != nil {
		return err
	}
	if err := writePart(zw, "_rels/.rels", rootRels); err != nil {
		return err
	}
	if err := writePart(zw, "xl/workbook.xml", workbookPart(sheets)); err != nil {
		return err
	}
	if err := writePart(zw, "xl/_rels/workbook.xml.rels", workbookRels(len(sheets), opts.SharedStrings)); err != nil {
		return err
	}
	if err := writePart(zw, "xl/styles.xml", stylesPart); err != nil {
		return err
	}

	for i, sheet := range sheets {
		name := worksheetPartName(i)
		pw, err := zw.Create(name)
		if err != nil {
			return NewWriteError(name, err)
		}
		ser := serializer.New(serializer.Options{
			SharedStrings:         resolverFor(table),
			AutoDetectColumnWidth: opts.AutoDetectColumnWidth,
			ColumnWidths:          opts.ColumnWidths,
			DefaultColumnWidth:    opts.DefaultColumnWidth,
			Logger:                logger,
		})
		for fragment := range ser.Serialize(sheet.Rows) {
			if _, err := io.WriteString(pw, fragment); err != nil {
				return NewWriteError(name, err)
			}
		}
		logger.Debug("worksheet part written", zap.String("sheet", sheet.Name), zap.String("part", name))
	}

	if table != nil {
		sw, err := zw.Create("xl/sharedStrings.xml")
		if err != nil {
			return NewWriteError("xl/sharedStrings.xml", err)
		}
		if err := table.WriteSST(sw); err != nil {
			return NewWriteError("xl/sharedStrings.xml", err)
		}
		logger.Debug("sharedStrings part written",
			zap.Int("unique", table.UniqueCount()), zap.Int("total", table.TotalCount()))
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}
	return nil
}

func resolverFor(table *sharedstrings.Table) serializer.StringResolver {
	if table == nil {
		return nil
	}
	return table.Resolver()
}

func writePart(zw *zip.Writer, name, content string) error {
	pw, err := zw.Create(name)
	if err != nil {
		return NewWriteError(name, err)
	}
	if _, err := io.WriteString(pw, content); err != nil {
		return NewWriteError(name, err)
	}
	return nil
}

func worksheetPartName(i int) string {
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
}

func contentTypes(sheetCount int, shared bool) string {
	var b strings.Builder
	b.WriteString(contentTypesHeader)
	for i := 0; i < sheetCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="%s"/>`, worksheetPartName(i), worksheetContentType)
	}
	if shared {
		fmt.Fprintf(&b, `<Override PartName="/xl/sharedStrings.xml" ContentType="%s"/>`, sharedStringsContentType)
	}
	b.WriteString("</Types>")
	return b.String()
}

func workbookPart(sheets []Sheet) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><workbook xmlns="` +
		serializer.NSSpreadsheetML +
		`" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets>`)
	for i, sheet := range sheets {
		fmt.Fprintf(&b, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`,
			serializer.EscapeText(sheet.Name), i+1, i+1)
	}
	b.WriteString("</sheets></workbook>")
	return b.String()
}

func workbookRels(sheetCount int, shared bool) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i := 0; i < sheetCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet%d.xml"/>`, i+1, i+1)
	}
	fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`, sheetCount+1)
	if shared {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>`, sheetCount+2)
	}
	b.WriteString("</Relationships>")
	return b.String()
}
