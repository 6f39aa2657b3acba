package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod = "method"
	attrPath   = "path"
	attrStatus = "status"
	attrSize   = "size"
	attrSource = "source"
)

// Icon generation sources.
const (
	SourceCLI    = "cli"
	SourceServer = "server"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a valid no-op recorder.
type Metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	iconGenerationsTotal   metric.Int64Counter
	iconGenerationDuration metric.Float64Histogram
	iconBytes              metric.Int64Histogram

	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
// detailedLabels keeps raw sizes and paths as label values.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests served by the dev server"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.iconGenerationsTotal, err = meter.Int64Counter(
		"icon_generations_total",
		metric.WithDescription("Total number of rendered icons"),
		metric.WithUnit("{icon}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon_generations_total counter: %w", err)
	}

	m.iconGenerationDuration, err = meter.Float64Histogram(
		"icon_generation_duration_seconds",
		metric.WithDescription("Time to render and encode one icon"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon_generation_duration_seconds histogram: %w", err)
	}

	m.iconBytes, err = meter.Int64Histogram(
		"icon_bytes",
		metric.WithDescription("Encoded PNG size"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(128, 256, 512, 1024, 2048, 4096, 8192),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon_bytes histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	if !m.detailedLabels {
		path = PathLabel(path)
	}
	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordIconGeneration records one icon render.
//
// Parameters:
//   - source: SourceCLI or SourceServer
//   - size: icon side length in pixels
//   - status: StatusSuccess or StatusError
//   - bytes: encoded size, ignored on error
//   - duration: time taken to render and encode
func (m *Metrics) RecordIconGeneration(ctx context.Context, source string, size int, status string, bytes int, duration time.Duration) {
	if m == nil || m.iconGenerationsTotal == nil || m.iconGenerationDuration == nil {
		return
	}

	sizeLabel := strconv.Itoa(size)
	if !m.detailedLabels {
		sizeLabel = SizeLabel(size)
	}
	attrs := []attribute.KeyValue{
		attribute.String(attrSource, source),
		attribute.String(attrSize, sizeLabel),
		attribute.String(attrStatus, status),
	}

	m.iconGenerationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.iconGenerationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if status == StatusSuccess && m.iconBytes != nil {
		m.iconBytes.Record(ctx, int64(bytes), metric.WithAttributes(attrs[:2]...))
	}
}
