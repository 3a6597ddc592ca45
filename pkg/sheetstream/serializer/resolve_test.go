package serializer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
)

func TestResolveCell(t *testing.T) {
	tests := []struct {
		name string
		cell *models.Cell
		kind models.CellType
		text string
	}{
		{"nil cell", nil, models.TypeString, ""},
		{"nil value", &models.Cell{}, models.TypeString, ""},
		{"string", &models.Cell{Value: "hello"}, models.TypeString, "hello"},
		{"int", &models.Cell{Value: 42}, models.TypeNumber, "42"},
		{"int64", &models.Cell{Value: int64(-7)}, models.TypeNumber, "-7"},
		{"float", &models.Cell{Value: 3.25}, models.TypeNumber, "3.25"},
		{"bool true", &models.Cell{Value: true}, models.TypeBoolean, "1"},
		{"bool false", &models.Cell{Value: false}, models.TypeBoolean, "0"},
		{"error literal", &models.Cell{Value: "#DIV/0!", Type: models.TypeError}, models.TypeError, "#DIV/0!"},
		{"serial passthrough", &models.Cell{Value: 43831.0, Type: models.TypeDate}, models.TypeDate, "43831"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := ResolveCell(tt.cell)
			assert.Equal(t, tt.kind, rc.Kind)
			assert.Equal(t, tt.text, rc.Text)
		})
	}
}

func TestResolveCellDate(t *testing.T) {
	rc := ResolveCell(&models.Cell{Value: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, models.TypeDate, rc.Kind)
	assert.Equal(t, "43831", rc.Text)

	rc = ResolveCell(&models.Cell{Value: time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)})
	assert.Equal(t, "43831.5", rc.Text)

	// dates before the epoch are not validated and yield negative serials
	rc = ResolveCell(&models.Cell{Value: time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, models.TypeDate, rc.Kind)
	assert.True(t, rc.Text[0] == '-')
}

func TestSerialDate(t *testing.T) {
	// 1900-03-01 is the first date where the Excel 1900 leap year bug no
	// longer matters; its well-known serial is 61
	assert.Equal(t, 61.0, SerialDate(time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 43831.0, SerialDate(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
