package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/wadespear/outlook-chatgpt-addin/internal/icon"
	"github.com/wadespear/outlook-chatgpt-addin/internal/instrumentation"
	"github.com/wadespear/outlook-chatgpt-addin/internal/logging"
)

const (
	// DefaultDevServerAddr matches the port in the add-in manifest.
	DefaultDevServerAddr = ":3000"

	// DefaultReadHeaderTimeout is the read header timeout for the dev server.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultIdleTimeout is the idle timeout for the dev server.
	DefaultIdleTimeout = 120 * time.Second
)

// DevServerConfig holds configuration for the development server.
type DevServerConfig struct {
	// Addr is the listen address (default ":3000").
	Addr string

	// Root is the directory assets are served from (default ".").
	Root string

	// Index is the asset served for "/" (default "/src/taskpane.html").
	Index string

	// CertFile and KeyFile are the PEM pair used for HTTPS.
	CertFile string
	KeyFile  string

	// Insecure serves plain HTTP and ignores CertFile/KeyFile.
	Insecure bool

	// Style is the default style of /icons/ responses.
	Style icon.Style

	// InstrumentationProvider supplies metrics. Optional.
	InstrumentationProvider *instrumentation.Provider

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DevServer serves the add-in over HTTPS for sideloading.
type DevServer struct {
	httpServer *http.Server
	health     *HealthChecker
	logger     *slog.Logger
	addr       string
	insecure   bool

	mu        sync.Mutex
	boundAddr string
}

// NewDevServer validates config, loads the TLS key pair and builds the mux.
func NewDevServer(config DevServerConfig) (*DevServer, error) {
	if config.Addr == "" {
		config.Addr = DefaultDevServerAddr
	}
	if config.Root == "" {
		config.Root = "."
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Style == (icon.Style{}) {
		config.Style = icon.DefaultStyle
	}

	var tlsConfig *tls.Config
	if !config.Insecure {
		if config.CertFile == "" || config.KeyFile == "" {
			return nil, fmt.Errorf("TLS certificate and key are required unless insecure mode is enabled: %w", ErrCertificateNotFound)
		}
		pair, err := tls.LoadX509KeyPair(config.CertFile, config.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS key pair: %w", err)
		}
		tlsConfig = &tls.Config{
			Certificates: []tls.Certificate{pair},
			MinVersion:   tls.VersionTLS12,
		}
	}

	var metrics *instrumentation.Metrics
	if config.InstrumentationProvider != nil {
		metrics = config.InstrumentationProvider.Metrics()
	}

	health := NewHealthChecker(config.Root)

	mux := http.NewServeMux()
	health.RegisterHealthEndpoints(mux)
	mux.Handle(IconPathPrefix, NewIconHandler(config.Style, metrics, config.Logger))
	mux.Handle("/", NewStaticHandler(config.Root, config.Index, config.Logger))

	return &DevServer{
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           WithRequestLogging(mux, metrics, config.Logger),
			TLSConfig:         tlsConfig,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			IdleTimeout:       DefaultIdleTimeout,
		},
		health:   health,
		logger:   logging.WithComponent(config.Logger, "devserver"),
		addr:     config.Addr,
		insecure: config.Insecure,
	}, nil
}

// Start serves in a blocking manner until Shutdown is called.
func (s *DevServer) Start() error {
	return s.StartWithReadySignal(nil)
}

// StartWithReadySignal binds the listener, closes ready (when non-nil) and
// serves until Shutdown is called.
func (s *DevServer) StartWithReadySignal(ready chan<- struct{}) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.boundAddr = ln.Addr().String()
	s.mu.Unlock()

	s.logger.Info("starting dev server", "addr", ln.Addr().String(), "tls", !s.insecure)
	if ready != nil {
		close(ready)
	}

	if s.insecure {
		return s.httpServer.Serve(ln)
	}
	// Certificates come from TLSConfig.
	return s.httpServer.ServeTLS(ln, "", "")
}

// Shutdown marks the server as shutting down and drains connections.
func (s *DevServer) Shutdown(ctx context.Context) error {
	s.health.MarkShuttingDown()
	s.logger.Info("shutting down dev server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the fully wrapped request handler.
func (s *DevServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Health returns the server's health checker.
func (s *DevServer) Health() *HealthChecker {
	return s.health
}

// Addr returns the configured listen address.
func (s *DevServer) Addr() string {
	return s.addr
}

// BoundAddr returns the address the listener is bound to, or "" before Start.
func (s *DevServer) BoundAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundAddr
}

// URL returns the base URL clients should use.
func (s *DevServer) URL() string {
	scheme := "https"
	if s.insecure {
		scheme = "http"
	}
	host, port, err := net.SplitHostPort(s.addr)
	if bound := s.BoundAddr(); bound != "" {
		host, port, err = net.SplitHostPort(bound)
	}
	if err != nil {
		return scheme + "://" + s.addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return scheme + "://" + net.JoinHostPort(host, port)
}
