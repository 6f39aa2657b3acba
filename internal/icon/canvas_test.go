package icon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	tests := map[int]int{1: 1, 16: 1, 24: 1, 47: 1, 48: 2, 64: 2, 80: 3, 128: 5}
	for size, want := range tests {
		assert.Equal(t, want, Scale(size), "Scale(%d)", size)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, 5, 0},
		{3, 2, 1},
		{-1, 2, -1},
		{-3, 2, -2},
		{-4, 2, -2},
		{-5, 1, -5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floorDiv(tt.a, tt.b), "floorDiv(%d, %d)", tt.a, tt.b)
	}
}

func TestRenderLayoutAtScaleOne(t *testing.T) {
	c, err := Render(24, DefaultStyle)
	require.NoError(t, err)

	// 17x7 text block centered at (3, 8).
	assert.Equal(t, green, c.At(3, 8), "G top-left cell is blank")
	assert.Equal(t, white, c.At(4, 8), "G top row is inked")
	for row := 0; row < GlyphHeight; row++ {
		assert.Equal(t, green, c.At(3+5, 8+row), "spacing column after G, row %d", row)
		assert.Equal(t, green, c.At(3+11, 8+row), "spacing column after P, row %d", row)
		assert.Equal(t, white, c.At(3+14, 8+row), "T stem, row %d", row)
	}
	assert.Equal(t, green, c.At(3, 7), "row above text")
	assert.Equal(t, green, c.At(3, 15), "row below text")
}

func TestRenderClipsOversizedText(t *testing.T) {
	// At 16px the 17-unit text starts one pixel left of the canvas.
	c, err := Render(16, DefaultStyle)
	require.NoError(t, err)
	assert.Equal(t, white, c.At(0, 4), "G column 1 lands on x=0")
}

func TestRenderScaledBlocks(t *testing.T) {
	c, err := Render(128, DefaultStyle)
	require.NoError(t, err)

	scale := Scale(128)
	startX := floorDiv(128-TextWidth(3)*scale, 2)
	startY := floorDiv(128-GlyphHeight*scale, 2)
	// T crossbar cell (col 0, row 0) of the third glyph.
	x0 := startX + 12*scale
	for dy := 0; dy < scale; dy++ {
		for dx := 0; dx < scale; dx++ {
			assert.Equal(t, white, c.At(x0+dx, startY+dy))
		}
	}
	assert.Equal(t, green, c.At(x0-1, startY))
}

func TestRenderLowercaseMatchesUppercase(t *testing.T) {
	upper, err := Render(32, Style{Background: green, Foreground: white, Text: "AI"})
	require.NoError(t, err)
	lower, err := Render(32, Style{Background: green, Foreground: white, Text: "ai"})
	require.NoError(t, err)
	assert.Equal(t, upper.pix, lower.pix)
}

func TestCanvasBounds(t *testing.T) {
	c, err := NewCanvas(4, green)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Size())

	c.Set(-1, 0, white)
	c.Set(4, 4, white)
	assert.Equal(t, Color{}, c.At(4, 0))
	assert.Equal(t, green, c.At(3, 3))

	c.Set(1, 2, white)
	assert.Equal(t, white, c.At(1, 2))
}
