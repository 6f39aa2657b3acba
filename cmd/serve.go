package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wadespear/outlook-chatgpt-addin/internal/icon"
	"github.com/wadespear/outlook-chatgpt-addin/internal/instrumentation"
	"github.com/wadespear/outlook-chatgpt-addin/internal/logging"
	"github.com/wadespear/outlook-chatgpt-addin/internal/server"
)

// serveConfig holds the resolved serve flags.
type serveConfig struct {
	Addr     string
	Root     string
	Index    string
	CertFile string
	KeyFile  string
	Insecure bool
	Style    icon.Style
	Metrics  MetricsConfig
}

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// startupTimeout bounds how long the servers may take to bind.
const startupTimeout = 5 * time.Second

const certificateInstructions = `
========================================
SSL CERTIFICATES NOT FOUND
========================================

Office Add-ins require HTTPS. Please generate certificates:

Option 1: Using mkcert (recommended)
  1. Install mkcert: https://github.com/FiloSottile/mkcert
  2. Run: mkcert -install
  3. Run: mkdir certs && cd certs && mkcert localhost

Option 2: Using OpenSSL
  1. mkdir certs
  2. openssl req -x509 -nodes -days 365 -newkey rsa:2048 \
     -keyout certs/localhost.key -out certs/localhost.crt \
     -subj "/CN=localhost"

After generating certificates, run this server again.
`

func newServeCmd() *cobra.Command {
	var (
		cfg   serveConfig
		style styleFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the add-in over HTTPS for sideloading",
		Long: `Serve the add-in assets over HTTPS so Outlook can sideload the manifest.

Certificates are taken from --tls-cert-file/--tls-key-file, then from
~/.office-addin-dev-certs/localhost.{crt,key}, then from
<root>/certs/localhost.{crt,key}.

Icons are also rendered on request at /icons/icon-<size>.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envString(cmd, "addr", "DEV_SERVER_ADDR", &cfg.Addr)
			envString(cmd, "tls-cert-file", "TLS_CERT_FILE", &cfg.CertFile)
			envString(cmd, "tls-key-file", "TLS_KEY_FILE", &cfg.KeyFile)
			envBool(cmd, "metrics-enabled", "METRICS_ENABLED", &cfg.Metrics.Enabled)
			envString(cmd, "metrics-addr", "METRICS_ADDR", &cfg.Metrics.Addr)

			st, err := style.style()
			if err != nil {
				return err
			}
			cfg.Style = st

			return runServe(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultDevServerAddr, "Listen address. Can also use DEV_SERVER_ADDR env var.")
	cmd.Flags().StringVar(&cfg.Root, "root", ".", "Directory containing the add-in assets and manifest.xml")
	cmd.Flags().StringVar(&cfg.Index, "index", server.DefaultIndex, "Asset served for /")
	cmd.Flags().StringVar(&cfg.CertFile, "tls-cert-file", "", "TLS certificate file (PEM). Can also use TLS_CERT_FILE env var.")
	cmd.Flags().StringVar(&cfg.KeyFile, "tls-key-file", "", "TLS private key file (PEM). Can also use TLS_KEY_FILE env var.")
	cmd.Flags().BoolVar(&cfg.Insecure, "insecure", false, "Serve plain HTTP (Outlook will refuse to load the add-in)")

	// Metrics server flags
	cmd.Flags().BoolVar(&cfg.Metrics.Enabled, "metrics-enabled", false, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&cfg.Metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	style.register(cmd)

	return cmd
}

// resolveCertificate fills in the certificate pair from the known locations
// when neither flag names one.
func resolveCertificate(cfg *serveConfig, home string) error {
	if cfg.Insecure || (cfg.CertFile != "" && cfg.KeyFile != "") {
		return nil
	}
	if cfg.CertFile != "" || cfg.KeyFile != "" {
		return fmt.Errorf("both --tls-cert-file and --tls-key-file must be set")
	}
	cert, err := server.FindCertificate(home, cfg.Root)
	if err != nil {
		return err
	}
	cfg.CertFile, cfg.KeyFile = cert.CertFile, cert.KeyFile
	return nil
}

func printSideloadInstructions(out io.Writer, url, manifest string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out, "ChatGPT Email Assistant - Dev Server")
	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Server running at %s\n", url)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To sideload the add-in:")
	fmt.Fprintln(out, "1. Open Outlook (web or desktop)")
	fmt.Fprintln(out, "2. Go to Home > Get Add-ins > My Add-ins")
	fmt.Fprintln(out, `3. Click "Add a custom add-in" > "Add from file"`)
	fmt.Fprintf(out, "4. Select: %s\n", manifest)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Press Ctrl+C to stop the server.")
	fmt.Fprintln(out)
}

func runServe(ctx context.Context, out io.Writer, cfg serveConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	home, _ := os.UserHomeDir()
	if err := resolveCertificate(&cfg, home); err != nil {
		if errors.Is(err, server.ErrCertificateNotFound) {
			fmt.Fprint(out, certificateInstructions)
		}
		return err
	}
	if cfg.Insecure {
		slog.Warn("serving plain HTTP; Outlook requires HTTPS to load the add-in")
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	var metricsServer *server.MetricsServer
	if cfg.Metrics.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.Metrics.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		if err := startAndWait(metricsServer.StartWithReadySignal); err != nil {
			return fmt.Errorf("metrics server failed to start: %w", err)
		}
		slog.Info("metrics server started", "addr", metricsServer.Addr())

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				slog.Warn("error during metrics server shutdown", logging.Err(err))
			}
		}()
	}

	devServer, err := server.NewDevServer(server.DevServerConfig{
		Addr:                    cfg.Addr,
		Root:                    cfg.Root,
		Index:                   cfg.Index,
		CertFile:                cfg.CertFile,
		KeyFile:                 cfg.KeyFile,
		Insecure:                cfg.Insecure,
		Style:                   cfg.Style,
		InstrumentationProvider: provider,
		Logger:                  slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to create dev server: %w", err)
	}

	ready := make(chan struct{})
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := devServer.StartWithReadySignal(ready); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ready:
	case err := <-serverDone:
		return fmt.Errorf("dev server failed to start: %w", err)
	case <-time.After(startupTimeout):
		return fmt.Errorf("dev server startup timed out")
	}

	manifest := filepath.Join(cfg.Root, "manifest.xml")
	if abs, err := filepath.Abs(manifest); err == nil {
		manifest = abs
	}
	printSideloadInstructions(out, devServer.URL(), manifest)

	select {
	case <-shutdownCtx.Done():
		fmt.Fprintln(out, "Shutdown signal received, stopping dev server...")
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := devServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("error shutting down dev server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("dev server stopped with error: %w", err)
		}
	}

	fmt.Fprintln(out, "Dev server gracefully stopped")
	return nil
}

// startAndWait runs start in a goroutine and waits until it signals ready,
// fails, or startupTimeout elapses.
func startAndWait(start func(ready chan<- struct{}) error) error {
	ready := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		if err := start(ready); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ready:
		return nil
	case err := <-errc:
		if err == nil {
			return fmt.Errorf("server exited before becoming ready")
		}
		return err
	case <-time.After(startupTimeout):
		return fmt.Errorf("startup timed out")
	}
}
