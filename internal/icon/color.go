package icon

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/teacat/noire"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB returns the Color with the given channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var hexColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !hexColorPattern.MatchString(hex) {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := noire.NewHex(hex).RGB()
	return Color{R: channel(r), G: channel(g), B: channel(b)}, nil
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
