package icon

import "fmt"

// MaxSize bounds the side length of a canvas.
const MaxSize = 4096

// Style describes what an icon looks like.
type Style struct {
	Background Color
	Foreground Color
	Text       string
}

// DefaultStyle is white "GPT" on the OpenAI green.
var DefaultStyle = Style{
	Background: RGB(16, 163, 127),
	Foreground: RGB(255, 255, 255),
	Text:       "GPT",
}

// Canvas is a square RGB raster.
type Canvas struct {
	size int
	pix  []uint8 // 3 bytes per pixel, rows top to bottom
}

// NewCanvas returns a size x size canvas filled with bg.
func NewCanvas(size int, bg Color) (*Canvas, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	c := &Canvas{size: size, pix: make([]uint8, 3*size*size)}
	for i := 0; i < len(c.pix); i += 3 {
		c.pix[i], c.pix[i+1], c.pix[i+2] = bg.R, bg.G, bg.B
	}
	return c, nil
}

func checkSize(size int) error {
	if size <= 0 || size > MaxSize {
		return fmt.Errorf("%w: size %d not in [1, %d]", ErrInvalidDimension, size, MaxSize)
	}
	return nil
}

// Size returns the side length in pixels.
func (c *Canvas) Size() int { return c.size }

// At returns the color at (x, y). Out-of-range coordinates return the zero Color.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || y < 0 || x >= c.size || y >= c.size {
		return Color{}
	}
	i := 3 * (y*c.size + x)
	return Color{R: c.pix[i], G: c.pix[i+1], B: c.pix[i+2]}
}

// Set paints (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || y < 0 || x >= c.size || y >= c.size {
		return
	}
	i := 3 * (y*c.size + x)
	c.pix[i], c.pix[i+1], c.pix[i+2] = col.R, col.G, col.B
}

// Scale returns the integer text scale for a canvas of the given size.
func Scale(size int) int {
	if s := size / 24; s > 1 {
		return s
	}
	return 1
}

// Render paints a canvas for style. Text is centered, scaled by Scale(size)
// and clipped at the canvas edges.
func Render(size int, style Style) (*Canvas, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	text, err := shapeText(style.Text)
	if err != nil {
		return nil, err
	}
	c, err := NewCanvas(size, style.Background)
	if err != nil {
		return nil, err
	}
	if len(text) == 0 {
		return c, nil
	}

	scale := Scale(size)
	width := TextWidth(len(text))
	startX := floorDiv(size-width*scale, 2)
	startY := floorDiv(size-GlyphHeight*scale, 2)

	for y := 0; y < size; y++ {
		ty := floorDiv(y-startY, scale)
		if ty < 0 || ty >= GlyphHeight {
			continue
		}
		for x := 0; x < size; x++ {
			tx := floorDiv(x-startX, scale)
			if tx < 0 || tx >= width {
				continue
			}
			if text[tx/glyphAdvance].Ink(tx%glyphAdvance, ty) {
				c.Set(x, y, style.Foreground)
			}
		}
	}
	return c, nil
}

// floorDiv divides rounding toward negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// scanlines serializes the canvas as PNG filter-type-0 rows.
func (c *Canvas) scanlines() []byte {
	stride := 3 * c.size
	buf := make([]byte, 0, c.size*(1+stride))
	for y := 0; y < c.size; y++ {
		buf = append(buf, ftNone)
		buf = append(buf, c.pix[y*stride:(y+1)*stride]...)
	}
	return buf
}
