package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

// Color type, as per the PNG spec.
const ctTrueColor = 2

// Filter type, as per the PNG spec.
const ftNone = 0

const bitDepth = 8

type encoder struct {
	w      io.Writer
	err    error
	header [8]byte
	footer [4]byte
	tmp    [13]byte
}

func (e *encoder) writeChunk(b []byte, name string) {
	if e.err != nil {
		return
	}
	if len(b) > math.MaxInt32 {
		e.err = fmt.Errorf("%w: %s chunk is too large: %d", ErrEncodingInvariant, name, len(b))
		return
	}
	binary.BigEndian.PutUint32(e.header[:4], uint32(len(b)))
	copy(e.header[4:8], name)
	binary.BigEndian.PutUint32(e.footer[:4], chunkCRC(e.header[4:8], b))

	_, e.err = e.w.Write(e.header[:8])
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(e.footer[:4])
}

func (e *encoder) writeIHDR(size int) {
	binary.BigEndian.PutUint32(e.tmp[0:4], uint32(size))
	binary.BigEndian.PutUint32(e.tmp[4:8], uint32(size))
	e.tmp[8] = bitDepth
	e.tmp[9] = ctTrueColor
	e.tmp[10] = 0 // default compression method
	e.tmp[11] = 0 // default filter method
	e.tmp[12] = 0 // non-interlaced
	e.writeChunk(e.tmp[:13], "IHDR")
}

func (e *encoder) writeIDAT(c *Canvas) {
	if e.err != nil {
		return
	}
	raw := c.scanlines()
	if want := c.size * (1 + 3*c.size); len(raw) != want {
		e.err = fmt.Errorf("%w: scanline buffer is %d bytes, want %d", ErrEncodingInvariant, len(raw), want)
		return
	}
	data, err := deflate(raw)
	if err != nil {
		e.err = err
		return
	}
	e.writeChunk(data, "IDAT")
}

func (e *encoder) writeIEND() { e.writeChunk(nil, "IEND") }

// deflate wraps raw in a zlib stream at the default level.
func deflate(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	return buf.Bytes(), nil
}

// EncodeTo writes c to w as a PNG: signature, IHDR, a single IDAT and IEND.
// Nothing is written when the image data cannot be prepared.
func EncodeTo(w io.Writer, c *Canvas) error {
	if c == nil {
		return fmt.Errorf("%w: nil canvas", ErrInvalidDimension)
	}
	if err := checkSize(c.size); err != nil {
		return err
	}
	var buf bytes.Buffer
	e := &encoder{w: &buf}
	buf.WriteString(pngHeader)
	e.writeIHDR(c.size)
	e.writeIDAT(c)
	e.writeIEND()
	if e.err != nil {
		return e.err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Encode returns c as PNG bytes.
func Encode(c *Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Generate renders a size x size icon with text centered in fg on bg and
// returns it as PNG bytes. An empty text yields a solid placeholder.
func Generate(size int, bg Color, text string, fg Color) ([]byte, error) {
	c, err := Render(size, Style{Background: bg, Foreground: fg, Text: text})
	if err != nil {
		return nil, err
	}
	return Encode(c)
}
