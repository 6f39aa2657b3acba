// Package logging provides structured logging utilities for the add-in tooling.
//
// This package centralizes logging patterns so the icon generator and the
// development server emit the same attribute names through log/slog.
//
// # Usage Patterns
//
// Build the process logger once and install it:
//
//	slog.SetDefault(logging.New(os.Stderr, debug, jsonOutput))
//
// Attach standard attributes:
//
//	logger := logging.WithComponent(slog.Default(), "devserver")
//	logger.Info("request served",
//	    logging.Path(r.URL.Path),
//	    logging.Status(logging.StatusSuccess))
//
// Code that only needs level methods accepts the Logger interface, which
// SlogAdapter implements.
package logging
