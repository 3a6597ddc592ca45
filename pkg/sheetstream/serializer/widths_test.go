package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sheetstream/sheetstream-go/pkg/sheetstream/models"
)

func TestWidthTracker(t *testing.T) {
	tr := NewWidthTracker(true)

	tr.Update(0, models.ResolvedCell{Kind: models.TypeString, Text: "ab"})
	tr.Update(0, models.ResolvedCell{Kind: models.TypeString, Text: "abcdef"})
	tr.Update(0, models.ResolvedCell{Kind: models.TypeString, Text: "xyz"})
	tr.Update(2, models.ResolvedCell{Kind: models.TypeNumber, Text: "1234"})

	w, ok := tr.Width(0)
	assert.True(t, ok)
	assert.Equal(t, 6.0, w)

	w, ok = tr.Width(2)
	assert.True(t, ok)
	assert.Equal(t, 4.0, w)

	_, ok = tr.Width(1)
	assert.False(t, ok)

	assert.Equal(t, map[int]float64{0: 6, 2: 4}, tr.Widths())
}

func TestWidthTrackerMultibyte(t *testing.T) {
	tr := NewWidthTracker(true)
	tr.Update(0, models.ResolvedCell{Kind: models.TypeString, Text: "héllo"})

	w, _ := tr.Width(0)
	assert.Equal(t, 5.0, w, "width counts runes, not bytes")
}

func TestWidthTrackerDisabled(t *testing.T) {
	tr := NewWidthTracker(false)
	tr.Update(0, models.ResolvedCell{Kind: models.TypeString, Text: "abcdef"})

	_, ok := tr.Width(0)
	assert.False(t, ok)
	assert.Empty(t, tr.Widths())
}
