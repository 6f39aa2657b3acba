package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/wadespear/outlook-chatgpt-addin/internal/icon"
	"github.com/wadespear/outlook-chatgpt-addin/internal/instrumentation"
	"github.com/wadespear/outlook-chatgpt-addin/internal/logging"
)

// IconPathPrefix is the mux pattern for dynamically rendered icons.
const IconPathPrefix = "/icons/"

// MaxIconSize bounds on-the-fly rendering.
const MaxIconSize = 512

var iconPathPattern = regexp.MustCompile(`^/icons/icon-([0-9]+)\.png$`)

// IconHandler renders icons on request, so the manifest can point at sizes
// that were never written to disk.
type IconHandler struct {
	style   icon.Style
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

// NewIconHandler returns a handler rendering icons with style. metrics may be
// nil.
func NewIconHandler(style icon.Style, metrics *instrumentation.Metrics, logger *slog.Logger) *IconHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IconHandler{
		style:   style,
		metrics: metrics,
		logger:  logging.WithComponent(logger, "icons"),
	}
}

// parseIconRequest extracts the size and style overrides from r.
func (h *IconHandler) parseIconRequest(r *http.Request) (int, icon.Style, error) {
	m := iconPathPattern.FindStringSubmatch(r.URL.Path)
	if m == nil {
		return 0, icon.Style{}, fmt.Errorf("%w: path %q", icon.ErrInvalidDimension, r.URL.Path)
	}
	size, err := strconv.Atoi(m[1])
	if err != nil || size < 1 || size > MaxIconSize {
		return 0, icon.Style{}, fmt.Errorf("%w: size must be between 1 and %d", icon.ErrInvalidDimension, MaxIconSize)
	}

	style := h.style
	q := r.URL.Query()
	if q.Has("text") {
		style.Text = q.Get("text")
	}
	if v := q.Get("bg"); v != "" {
		if style.Background, err = icon.ParseColor(v); err != nil {
			return 0, icon.Style{}, err
		}
	}
	if v := q.Get("fg"); v != "" {
		if style.Foreground, err = icon.ParseColor(v); err != nil {
			return 0, icon.Style{}, err
		}
	}
	return size, style, nil
}

func (h *IconHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD, OPTIONS")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	size, style, err := h.parseIconRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, span := instrumentation.StartIconSpan(r.Context(), instrumentation.SourceServer, size, style.Text)
	defer span.End()

	start := time.Now()
	data, err := icon.Generate(size, style.Background, style.Text, style.Foreground)
	duration := time.Since(start)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		h.metrics.RecordIconGeneration(ctx, instrumentation.SourceServer, size, instrumentation.StatusError, 0, duration)

		status := http.StatusInternalServerError
		if errors.Is(err, icon.ErrUnsupportedGlyph) || errors.Is(err, icon.ErrInvalidDimension) {
			status = http.StatusBadRequest
		} else {
			h.logger.Error("icon generation failed", logging.Size(size), logging.Err(err))
		}
		http.Error(w, err.Error(), status)
		return
	}

	instrumentation.SetSpanSuccess(span)
	h.metrics.RecordIconGeneration(ctx, instrumentation.SourceServer, size, instrumentation.StatusSuccess, len(data), duration)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}
