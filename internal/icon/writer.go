package icon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wadespear/outlook-chatgpt-addin/internal/logging"
)

// DefaultSizes are the icon sizes referenced by the add-in manifest.
var DefaultSizes = []int{16, 32, 64, 80, 128}

// Written describes one persisted icon.
type Written struct {
	Size     int
	Path     string
	Bytes    int
	Duration time.Duration
}

// FileName returns the file name used for an icon of the given size.
func FileName(size int) string {
	return "icon-" + strconv.Itoa(size) + ".png"
}

// WriteSet renders every size in sizes with style and writes them to dir,
// creating it if needed. It stops at the first failure and returns the icons
// written so far.
func WriteSet(ctx context.Context, dir string, sizes []int, style Style, logger logging.Logger) ([]Written, error) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create icon directory %s: %w", dir, err)
	}

	written := make([]Written, 0, len(sizes))
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		start := time.Now()
		data, err := Generate(size, style.Background, style.Text, style.Foreground)
		if err != nil {
			return written, fmt.Errorf("failed to generate %dpx icon: %w", size, err)
		}

		path := filepath.Join(dir, FileName(size))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}

		w := Written{Size: size, Path: path, Bytes: len(data), Duration: time.Since(start)}
		logger.Debug("icon written",
			logging.KeySize, size,
			logging.KeyPath, path,
			logging.KeyBytes, len(data))
		written = append(written, w)
	}
	return written, nil
}
