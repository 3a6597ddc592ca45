package sharedstrings

import (
	"fmt"
	"io"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/serializer"
)

// Table assigns stable increasing integer indices to unique strings in
// first-seen order and records them in a backing Store. The string-to-index
// map lives in memory; the index-to-string side is whatever the Store does
// with it, which is how a DiskStore keeps large dictionaries out of memory.
type Table struct {
	store   Store
	indices map[string]int
	next    int
	total   int
	addErr  error
}

// NewTable creates a table over the given store.
func NewTable(store Store) *Table {
	return &Table{store: store, indices: make(map[string]int)}
}

// Add returns the index for s, assigning the next free index on first
// sight. Repeated calls with the same string return the same index.
func (t *Table) Add(s string) int {
	t.total++
	if index, ok := t.indices[s]; ok {
		return index
	}
	index := t.next
	if err := t.store.AddString(index, s); err != nil && t.addErr == nil {
		// write-behind failure; surfaces when the table is written out
		t.addErr = err
	}
	t.indices[s] = index
	t.next++
	return index
}

// Resolver returns Add as a serializer string resolver.
func (t *Table) Resolver() serializer.StringResolver {
	return t.Add
}

// UniqueCount returns the number of distinct strings interned.
func (t *Table) UniqueCount() int {
	return t.next
}

// TotalCount returns the number of Add calls, i.e. the number of cells
// referencing the table.
func (t *Table) TotalCount() int {
	return t.total
}

// WriteSST writes the sharedStrings part for every interned string, in
// index order, reading the strings back through the store.
func (t *Table) WriteSST(w io.Writer) error {
	if t.addErr != nil {
		return fmt.Errorf("shared string table incomplete: %w", t.addErr)
	}
	if d, ok := t.store.(*DiskStore); ok {
		if err := d.Flush(); err != nil {
			return err
		}
	}

	header := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><sst xmlns=%q count="%d" uniqueCount="%d">`,
		serializer.NSSpreadsheetML, t.total, t.next)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for i := 0; i < t.next; i++ {
		s, ok := t.store.GetString(i)
		if !ok {
			return fmt.Errorf("shared string %d missing from store", i)
		}
		if _, err := io.WriteString(w, "<si><t>"+serializer.EscapeText(s)+"</t></si>"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</sst>")
	return err
}

// Cleanup releases the backing store's resources.
func (t *Table) Cleanup() {
	t.store.Cleanup()
}
