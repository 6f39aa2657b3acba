package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wadespear/outlook-chatgpt-addin/internal/instrumentation"
	"github.com/wadespear/outlook-chatgpt-addin/internal/logging"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// WithRequestLogging wraps next with request ids, tracing, access logging and
// the HTTP request metrics. metrics may be nil.
func WithRequestLogging(next http.Handler, metrics *instrumentation.Metrics, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithComponent(logger, "http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx, span := instrumentation.StartRequestSpan(r.Context(), r.Method, r.URL.Path, requestID)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(ctx))
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		duration := time.Since(start)

		span.SetAttributes(attribute.Int(instrumentation.SpanAttrHTTPStatus, rec.status))
		if rec.status >= http.StatusInternalServerError {
			instrumentation.SetSpanError(span, httpStatusError(rec.status))
		} else {
			instrumentation.SetSpanSuccess(span)
		}
		metrics.RecordHTTPRequest(ctx, r.Method, r.URL.Path, rec.status, duration)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(ctx, level, "request",
			logging.Method(r.Method),
			logging.Path(r.URL.Path),
			slog.Int("http_status", rec.status),
			logging.Duration(duration),
			logging.RequestID(requestID),
		)
	})
}

// httpStatusError reports a server-side HTTP status on a span.
type httpStatusError int

func (e httpStatusError) Error() string {
	return "http status " + http.StatusText(int(e))
}
