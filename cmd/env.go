package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wadespear/outlook-chatgpt-addin/internal/icon"
)

// defaultEnvFiles are loaded in order when --env-file is not given. Values
// already in the environment are never overridden, so earlier files win.
var defaultEnvFiles = []string{".env.local", ".env"}

// loadEnvFiles loads explicit, or the default files when explicit is empty.
// Missing default files are ignored; a missing explicit file is an error.
func loadEnvFiles(explicit string) error {
	if explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", explicit, err)
		}
		return nil
	}

	for _, name := range defaultEnvFiles {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", name, err)
		}
	}
	return nil
}

// envString sets *value from the environment variable key, unless the flag
// was set explicitly on the command line.
func envString(cmd *cobra.Command, flag, key string, value *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := os.Getenv(key); v != "" {
		*value = v
	}
}

// envBool is envString for boolean flags. Unparseable values are ignored.
func envBool(cmd *cobra.Command, flag, key string, value *bool) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*value = parsed
		}
	}
}

// parseCommaSeparatedList parses a comma-separated string into a slice of trimmed strings.
// Returns nil if the input is empty.
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// parseSizes parses a list such as "16,32,64" into icon sizes.
func parseSizes(s string) ([]int, error) {
	fields := parseCommaSeparatedList(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no icon sizes given")
	}
	sizes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid icon size %q: %w", f, err)
		}
		if n < 1 || n > icon.MaxSize {
			return nil, fmt.Errorf("invalid icon size %d: must be between 1 and %d", n, icon.MaxSize)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// styleFlags are the icon appearance flags shared by generate-icons and serve.
type styleFlags struct {
	text       string
	background string
	foreground string
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.text, "text", icon.DefaultStyle.Text, "Text drawn on the icon (A-Z, 0-9, space)")
	cmd.Flags().StringVar(&f.background, "background", icon.DefaultStyle.Background.String(), "Background colour as #rrggbb")
	cmd.Flags().StringVar(&f.foreground, "foreground", icon.DefaultStyle.Foreground.String(), "Text colour as #rrggbb")
}

// style resolves the flags into an icon.Style.
func (f *styleFlags) style() (icon.Style, error) {
	bg, err := icon.ParseColor(f.background)
	if err != nil {
		return icon.Style{}, fmt.Errorf("invalid --background: %w", err)
	}
	fg, err := icon.ParseColor(f.foreground)
	if err != nil {
		return icon.Style{}, fmt.Errorf("invalid --foreground: %w", err)
	}
	return icon.Style{Background: bg, Foreground: fg, Text: f.text}, nil
}
