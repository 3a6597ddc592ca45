package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		col      int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{18277, "ZZZ"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ColumnName(tt.col), "ColumnName(%d)", tt.col)
	}
}

func TestCellRef(t *testing.T) {
	assert.Equal(t, "A1", CellRef(0, 1))
	assert.Equal(t, "D3", CellRef(3, 3))
	assert.Equal(t, "AA100", CellRef(26, 100))
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"a&b", "a&amp;b"},
		{"<tag>", "&lt;tag&gt;"},
		{`"quoted"`, "&quot;quoted&quot;"},
		{"it's", "it&apos;s"},
		{"tab\tand\nnewline\r", "tab\tand\nnewline\r"},
		{"nul\x00bell\x07", "nulbell"},
		{"mixed\x1f<&", "mixed&lt;&amp;"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EscapeText(tt.input), "EscapeText(%q)", tt.input)
	}
}
