// Package main provides the CLI entry point for sheetstream-go.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream"
	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
)

var (
	outputPath      string
	sheetName       string
	sharedStrings   bool
	pageSize        int
	autoWidth       bool
	defaultColWidth float64
	verify          bool
	verbose         bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetstream [input.csv]",
		Short: "Stream CSV data into an xlsx workbook",
		Long: `sheetstream-go converts row-oriented CSV data into an OOXML spreadsheet
package, streaming rows through with bounded memory.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .xlsx path (required)")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "Sheet1", "Worksheet name")
	rootCmd.Flags().BoolVar(&sharedStrings, "shared-strings", false, "Deduplicate strings into the sharedStrings part")
	rootCmd.Flags().IntVar(&pageSize, "page-size", 0, "Shared-string disk page size (0 = default)")
	rootCmd.Flags().BoolVar(&autoWidth, "auto-width", false, "Auto-detect column widths (buffers all rows)")
	rootCmd.Flags().Float64Var(&defaultColWidth, "default-col-width", 0, "Default column width in character units")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "Re-open the written workbook and report its contents")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Log progress to stderr")
	_ = rootCmd.MarkFlagRequired("output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		defer logger.Sync() //nolint:errcheck // stderr sync failures are uninteresting
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	opts := sheetstream.Options{
		SharedStrings:         sharedStrings,
		PageSize:              pageSize,
		AutoDetectColumnWidth: autoWidth,
		Logger:                logger,
	}
	if cmd.Flags().Changed("default-col-width") {
		opts.DefaultColumnWidth = &defaultColWidth
	}

	var readErr error
	rows := csvRows(csv.NewReader(in), &readErr)
	sheets := []sheetstream.Sheet{{Name: sheetName, Rows: rows}}

	if err := sheetstream.WriteWorkbook(out, sheets, opts); err != nil {
		out.Close()
		return fmt.Errorf("write failed: %w", err)
	}
	if readErr != nil {
		out.Close()
		return fmt.Errorf("read input: %w", readErr)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if verify {
		if err := verifyWorkbook(outputPath, sheetName); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	return nil
}

// csvRows adapts a CSV reader into a single-pass row sequence. Empty fields
// become holes; other fields are auto-typed. A read failure stops the
// sequence and is reported through readErr.
func csvRows(r *csv.Reader, readErr *error) iter.Seq[models.Row] {
	r.FieldsPerRecord = -1
	return func(yield func(models.Row) bool) {
		for index := 1; ; index++ {
			record, err := r.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				*readErr = err
				return
			}

			cells := make([]*models.Cell, len(record))
			for col, field := range record {
				if field == "" {
					continue
				}
				cells[col] = &models.Cell{Value: parseValue(field)}
			}
			if !yield(models.Row{Cells: cells, Index: index}) {
				return
			}
		}
	}
}

// parseValue attempts to parse a CSV field as a number or boolean.
// Returns int64 for integers, float64 for decimals, bool for true/false,
// or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}

// verifyWorkbook re-opens the written package with a reader implementation
// and prints a short summary.
func verifyWorkbook(path, sheet string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}

	cells := 0
	for _, row := range rows {
		for _, v := range row {
			if v != "" {
				cells++
			}
		}
	}
	fmt.Printf("%s: sheet %q, %d rows, %d non-empty cells\n", path, sheet, len(rows), cells)
	return nil
}
