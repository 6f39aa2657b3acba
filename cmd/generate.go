package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wadespear/outlook-chatgpt-addin/internal/icon"
	"github.com/wadespear/outlook-chatgpt-addin/internal/instrumentation"
	"github.com/wadespear/outlook-chatgpt-addin/internal/logging"
)

// defaultIconSizes is the --sizes default.
var defaultIconSizes = joinSizes(icon.DefaultSizes)

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

func newGenerateIconsCmd() *cobra.Command {
	var (
		outDir string
		sizes  string
		style  styleFlags
	)

	cmd := &cobra.Command{
		Use:   "generate-icons",
		Short: "Write the add-in icons as PNG files",
		Long: `Render the add-in icon at each requested size and write it to
<out>/icon-<size>.png. The manifest references these files.

Environment variables ICON_OUT_DIR and ICON_SIZES apply when the matching
flag is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envString(cmd, "out", "ICON_OUT_DIR", &outDir)
			envString(cmd, "sizes", "ICON_SIZES", &sizes)

			parsed, err := parseSizes(sizes)
			if err != nil {
				return err
			}
			st, err := style.style()
			if err != nil {
				return err
			}
			return runGenerateIcons(cmd.Context(), cmd.OutOrStdout(), outDir, parsed, st)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "assets", "Output directory. Can also use ICON_OUT_DIR env var.")
	cmd.Flags().StringVar(&sizes, "sizes", defaultIconSizes, "Comma-separated icon sizes in pixels. Can also use ICON_SIZES env var.")
	style.register(cmd)

	return cmd
}

func runGenerateIcons(ctx context.Context, out io.Writer, dir string, sizes []int, style icon.Style) error {
	if ctx == nil {
		ctx = context.Background()
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	ctx, span := instrumentation.StartSpan(ctx, "icon.generate_set",
		attribute.String(instrumentation.SpanAttrOutputDir, dir),
		attribute.Int("icon.count", len(sizes)),
	)
	defer span.End()

	fmt.Fprintln(out, "Generating icons...")
	fmt.Fprintln(out)

	logger := logging.NewSlogAdapter(logging.WithOperation(slog.Default(), "generate_icons"))
	written, err := icon.WriteSet(ctx, dir, sizes, style, logger)
	for _, w := range written {
		provider.Metrics().RecordIconGeneration(ctx, instrumentation.SourceCLI, w.Size,
			instrumentation.StatusSuccess, w.Bytes, w.Duration)
		fmt.Fprintf(out, "Created: %s (%d bytes)\n", icon.FileName(w.Size), w.Bytes)
	}
	if err != nil {
		if failed := len(written); failed < len(sizes) {
			provider.Metrics().RecordIconGeneration(ctx, instrumentation.SourceCLI, sizes[failed],
				instrumentation.StatusError, 0, 0)
		}
		instrumentation.SetSpanError(span, err)
		return fmt.Errorf("failed to generate icons: %w", err)
	}
	instrumentation.SetSpanSuccess(span)

	fmt.Fprintf(out, "\nDone! %d icons written to %s\n", len(written), dir)
	return nil
}
