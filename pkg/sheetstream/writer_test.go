package sheetstream

import (
	"bytes"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
)

func rowSeq(rows ...models.Row) iter.Seq[models.Row] {
	return slices.Values(rows)
}

func writeTempWorkbook(t *testing.T, sheets []Sheet, opts Options) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWorkbook(f, sheets, opts))
	require.NoError(t, f.Close())
	return path
}

func TestWriteRoundTrip(t *testing.T) {
	rows := rowSeq(
		models.Row{Cells: []*models.Cell{{Value: "Name"}, {Value: "Score"}}, Index: 1},
		models.Row{Cells: []*models.Cell{{Value: "alice"}, {Value: 100}}, Index: 2},
		models.Row{Cells: []*models.Cell{{Value: "bob"}, {Value: 200.5}}, Index: 3},
	)
	path := writeTempWorkbook(t, []Sheet{{Name: "Sheet1", Rows: rows}}, DefaultOptions())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Name", "Score"}, got[0])
	assert.Equal(t, []string{"alice", "100"}, got[1])
	assert.Equal(t, []string{"bob", "200.5"}, got[2])
}

func TestWriteSharedStringsRoundTrip(t *testing.T) {
	rows := rowSeq(
		models.Row{Cells: []*models.Cell{{Value: "dup"}, {Value: "unique1"}}, Index: 1},
		models.Row{Cells: []*models.Cell{{Value: "dup"}, {Value: "unique2"}}, Index: 2},
		models.Row{Cells: []*models.Cell{{Value: "dup"}, {Value: "unique3"}}, Index: 3},
	)
	opts := Options{SharedStrings: true, PageSize: 2}
	path := writeTempWorkbook(t, []Sheet{{Name: "Data", Rows: rows}}, opts)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "dup", v)
	v, err = f.GetCellValue("Data", "A3")
	require.NoError(t, err)
	assert.Equal(t, "dup", v)
	v, err = f.GetCellValue("Data", "B2")
	require.NoError(t, err)
	assert.Equal(t, "unique2", v)
}

func TestWriteSparseRows(t *testing.T) {
	rows := rowSeq(
		models.Row{Cells: []*models.Cell{{Value: "a"}, nil, {Value: "c"}}, Index: 2},
	)
	path := writeTempWorkbook(t, []Sheet{{Name: "Sheet1", Rows: rows}}, DefaultOptions())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "", v)
	v, err = f.GetCellValue("Sheet1", "C2")
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestWriteMultipleSheets(t *testing.T) {
	sheets := []Sheet{
		{Name: "First", Rows: rowSeq(models.Row{Cells: []*models.Cell{{Value: "one"}}, Index: 1})},
		{Name: "Second", Rows: rowSeq(models.Row{Cells: []*models.Cell{{Value: "two"}}, Index: 1})},
	}
	path := writeTempWorkbook(t, sheets, DefaultOptions())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"First", "Second"}, f.GetSheetList())

	v, err := f.GetCellValue("Second", "A1")
	require.NoError(t, err)
	assert.Equal(t, "two", v)
}

func TestWriteAutoWidth(t *testing.T) {
	rows := rowSeq(
		models.Row{Cells: []*models.Cell{{Value: "short"}, {Value: "considerably longer text"}}, Index: 1},
	)
	opts := Options{AutoDetectColumnWidth: true}
	path := writeTempWorkbook(t, []Sheet{{Name: "Sheet1", Rows: rows}}, opts)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	wa, err := f.GetColWidth("Sheet1", "A")
	require.NoError(t, err)
	wb, err := f.GetColWidth("Sheet1", "B")
	require.NoError(t, err)
	assert.Equal(t, 5.0, wa)
	assert.Equal(t, 24.0, wb)
}

func TestWriteNoSheets(t *testing.T) {
	var b bytes.Buffer
	err := WriteWorkbook(&b, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestWriteDuplicateSheetName(t *testing.T) {
	var b bytes.Buffer
	sheets := []Sheet{
		{Name: "Same", Rows: rowSeq()},
		{Name: "Same", Rows: rowSeq()},
	}
	err := WriteWorkbook(&b, sheets, DefaultOptions())
	assert.ErrorIs(t, err, ErrDuplicateSheet)
}

func TestWriteCleansTempDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spill")
	rows := rowSeq(
		models.Row{Cells: []*models.Cell{{Value: "a"}, {Value: "b"}, {Value: "c"}}, Index: 1},
	)
	opts := Options{SharedStrings: true, PageSize: 1, TempDir: dir}

	var b bytes.Buffer
	require.NoError(t, WriteWorkbook(&b, []Sheet{{Name: "Sheet1", Rows: rows}}, opts))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "shared string spill dir must be removed")
}
