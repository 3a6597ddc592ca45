package serializer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
)

// ResolveCell maps a cell value and optional explicit type tag to a resolved
// (type tag, literal) pair ready for XML encoding. Every input value is
// representable: nil resolves to an empty string, unknown value types fall
// back to their fmt rendering as text.
func ResolveCell(c *models.Cell) models.ResolvedCell {
	if c == nil || c.Value == nil {
		return models.ResolvedCell{Kind: models.TypeString, Text: ""}
	}

	switch v := c.Value.(type) {
	case string:
		if c.Type != "" && c.Type != models.TypeString {
			// explicit tag on a textual literal, e.g. an error code like
			// "#DIV/0!" tagged as TypeError
			return models.ResolvedCell{Kind: c.Type, Text: v}
		}
		return models.ResolvedCell{Kind: models.TypeString, Text: v}
	case bool:
		return models.ResolvedCell{Kind: models.TypeBoolean, Text: boolText(v)}
	case time.Time:
		return models.ResolvedCell{Kind: models.TypeDate, Text: FormatNumber(SerialDate(v))}
	case float64:
		return resolveNumber(c.Type, v)
	case float32:
		return resolveNumber(c.Type, float64(v))
	case int:
		return resolveInt(c.Type, int64(v))
	case int64:
		return resolveInt(c.Type, v)
	case int32:
		return resolveInt(c.Type, int64(v))
	case uint:
		return resolveInt(c.Type, int64(v))
	default:
		return models.ResolvedCell{Kind: models.TypeString, Text: fmt.Sprint(v)}
	}
}

func resolveNumber(explicit models.CellType, f float64) models.ResolvedCell {
	if explicit == models.TypeDate {
		// value is already a serial day number
		return models.ResolvedCell{Kind: models.TypeDate, Text: FormatNumber(f)}
	}
	return models.ResolvedCell{Kind: models.TypeNumber, Text: FormatNumber(f)}
}

func resolveInt(explicit models.CellType, i int64) models.ResolvedCell {
	if explicit == models.TypeDate {
		return models.ResolvedCell{Kind: models.TypeDate, Text: strconv.FormatInt(i, 10)}
	}
	return models.ResolvedCell{Kind: models.TypeNumber, Text: strconv.FormatInt(i, 10)}
}

func boolText(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
