package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStrokeColor(t *testing.T) {
	t.Run("hex", func(t *testing.T) {
		assert.Equal(t, color.NRGBA{R: 255, A: 255}, parseStrokeColor("#FF0000"))
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, parseStrokeColor("#fff"))
	})

	t.Run("hex with alpha used by legacy eraser strokes", func(t *testing.T) {
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 0}, parseStrokeColor("#ffffff00"))
	})

	t.Run("highlighter rgba notation", func(t *testing.T) {
		got := parseStrokeColor("rgba(255, 0, 0, 0.3)")
		assert.Equal(t, uint8(255), got.R)
		assert.Equal(t, uint8(0), got.G)
		assert.InDelta(t, 77, got.A, 1)
	})

	t.Run("garbage falls back to opaque black", func(t *testing.T) {
		assert.Equal(t, color.NRGBA{A: 255}, parseStrokeColor("teal-ish"))
		assert.Equal(t, color.NRGBA{A: 255}, parseStrokeColor(""))
	})
}
