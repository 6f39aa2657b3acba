package icon

import "errors"

var (
	// ErrInvalidDimension reports a canvas size that is not positive or
	// exceeds MaxSize.
	ErrInvalidDimension = errors.New("icon: invalid dimension")

	// ErrCompression reports a failure of the zlib stream writer.
	ErrCompression = errors.New("icon: compression failed")

	// ErrEncodingInvariant reports an internal inconsistency, such as a
	// scanline buffer of the wrong length. It indicates a bug.
	ErrEncodingInvariant = errors.New("icon: encoding invariant violated")

	// ErrUnsupportedGlyph reports a text rune outside the bitmap font.
	ErrUnsupportedGlyph = errors.New("icon: unsupported glyph")

	// ErrInvalidColor reports a malformed hex color string.
	ErrInvalidColor = errors.New("icon: invalid color")
)
