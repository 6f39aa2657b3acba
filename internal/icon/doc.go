// Package icon renders the add-in's square PNG icons.
//
// An icon is a solid background with an optional short text label drawn in a
// fixed 5x7 bitmap font and centered on the canvas. The package has three
// layers that can be used on their own:
//
//   - Render paints a Canvas from a size and a Style.
//   - Encode turns a Canvas into a minimal truecolor PNG (IHDR, one IDAT,
//     IEND) using a table-driven CRC32 and a zlib stream.
//   - WriteSet persists a set of sizes as icon-<size>.png files.
//
// Generate composes Render and Encode and is the usual entry point:
//
//	data, err := icon.Generate(64, icon.RGB(16, 163, 127), "GPT", icon.RGB(255, 255, 255))
//	if err != nil {
//		return err
//	}
//
// Encoding is deterministic: identical inputs always produce identical bytes.
// The CRC table and the glyph table are built once and only read afterwards,
// so concurrent calls need no locking.
package icon
