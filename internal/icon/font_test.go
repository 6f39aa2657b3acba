package icon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPTGlyphs(t *testing.T) {
	tests := map[rune][GlyphHeight]string{
		'G': {".###.", "#...#", "#....", "#.###", "#...#", "#...#", ".###."},
		'P': {"####.", "#...#", "#...#", "####.", "#....", "#....", "#...."},
		'T': {"#####", "..#..", "..#..", "..#..", "..#..", "..#..", "..#.."},
	}
	for r, rows := range tests {
		g, ok := LookupGlyph(r)
		require.True(t, ok)
		for row, line := range rows {
			for col, ch := range line {
				assert.Equal(t, ch == '#', g.Ink(col, row), "%c (%d,%d)", r, col, row)
			}
		}
	}
}

func TestGlyphInkOutOfBounds(t *testing.T) {
	g, _ := LookupGlyph('T')
	assert.False(t, g.Ink(GlyphWidth, 0))
	assert.False(t, g.Ink(0, GlyphHeight))
	assert.False(t, g.Ink(-1, 0))
}

func TestGlyphsFitFiveColumns(t *testing.T) {
	for r, g := range glyphs {
		for row, bits := range g {
			assert.Zero(t, bits&^0b11111, "%q row %d", r, row)
		}
	}
}

func TestShapeText(t *testing.T) {
	out, err := shapeText("gpt 4")
	require.NoError(t, err)
	assert.Len(t, out, 5)

	_, err = shapeText("GPT!")
	assert.ErrorIs(t, err, ErrUnsupportedGlyph)

	out, err = shapeText("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 0, TextWidth(0))
	assert.Equal(t, 5, TextWidth(1))
	assert.Equal(t, 17, TextWidth(3))
}
