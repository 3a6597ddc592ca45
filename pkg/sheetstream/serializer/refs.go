package serializer

import (
	"strconv"
	"strings"
)

// ColumnName converts a 0-based column index to its spreadsheet letter name
// using bijective base-26: 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnName(col int) string {
	n := col + 1 // 1-based for bijective numbering
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n-- // bijective base-26 has no zero digit
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// CellRef renders the cell reference for a 0-based column and 1-based row,
// e.g. CellRef(0, 3) == "A3".
func CellRef(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

// EscapeText prepares a text payload for embedding in worksheet XML. Control
// characters in 0x00-0x1F other than tab, newline and carriage return are
// stripped before the XML special characters are escaped.
func EscapeText(s string) string {
	if !needsEscaping(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r == '\'':
			b.WriteString("&apos;")
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			// stripped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscaping(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '&' || c == '<' || c == '>' || c == '"' || c == '\'' {
			return true
		}
	}
	return false
}
