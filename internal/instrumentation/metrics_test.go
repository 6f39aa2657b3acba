package instrumentation

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newManualMetrics returns a Metrics recorder backed by a manual reader.
func newManualMetrics(t *testing.T, detailed bool) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"), detailed)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

// counterPoints returns the data points of the named Int64 sum.
func counterPoints(t *testing.T, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, not an int64 sum", name, m.Data)
			}
			return sum.DataPoints
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func attrValue(set attribute.Set, key string) string {
	v, _ := set.Value(attribute.Key(key))
	return v.Emit()
}

func TestMetrics_RecordIconGeneration(t *testing.T) {
	m, reader := newManualMetrics(t, false)
	ctx := context.Background()

	m.RecordIconGeneration(ctx, SourceCLI, 64, StatusSuccess, 600, time.Millisecond)
	m.RecordIconGeneration(ctx, SourceCLI, 64, StatusSuccess, 600, time.Millisecond)
	m.RecordIconGeneration(ctx, SourceServer, 100, StatusError, 0, time.Millisecond)

	points := counterPoints(t, reader, "icon_generations_total")
	if len(points) != 2 {
		t.Fatalf("expected 2 series, got %d", len(points))
	}
	for _, p := range points {
		switch attrValue(p.Attributes, attrSize) {
		case "64":
			if p.Value != 2 {
				t.Errorf("expected 2 generations at 64px, got %d", p.Value)
			}
		case "other":
			if attrValue(p.Attributes, attrStatus) != StatusError {
				t.Errorf("expected error status for size 100")
			}
		default:
			t.Errorf("unexpected size label %q", attrValue(p.Attributes, attrSize))
		}
	}
}

func TestMetrics_DetailedLabels(t *testing.T) {
	m, reader := newManualMetrics(t, true)
	m.RecordIconGeneration(context.Background(), SourceServer, 100, StatusSuccess, 900, time.Millisecond)

	points := counterPoints(t, reader, "icon_generations_total")
	if len(points) != 1 {
		t.Fatalf("expected 1 series, got %d", len(points))
	}
	if got := attrValue(points[0].Attributes, attrSize); got != "100" {
		t.Errorf("expected raw size label 100, got %q", got)
	}
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m, reader := newManualMetrics(t, false)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "GET", "/src/taskpane.js", 200, 10*time.Millisecond)
	m.RecordHTTPRequest(ctx, "GET", "/src/commands.js", 200, 10*time.Millisecond)
	m.RecordHTTPRequest(ctx, "GET", "/missing.css", 404, time.Millisecond)

	points := counterPoints(t, reader, "http_requests_total")
	if len(points) != 2 {
		t.Fatalf("expected 2 series, got %d", len(points))
	}
	for _, p := range points {
		path := attrValue(p.Attributes, attrPath)
		switch path {
		case "/static/js":
			if p.Value != 2 {
				t.Errorf("expected 2 js requests, got %d", p.Value)
			}
		case "/static/css":
			if attrValue(p.Attributes, attrStatus) != "404" {
				t.Errorf("expected 404 status label")
			}
		default:
			t.Errorf("unexpected path label %q", path)
		}
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	ctx := context.Background()

	// Zero value and nil receivers must not panic
	var empty Metrics
	empty.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
	empty.RecordIconGeneration(ctx, SourceCLI, 16, StatusSuccess, 100, time.Millisecond)

	var nilMetrics *Metrics
	nilMetrics.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
	nilMetrics.RecordIconGeneration(ctx, SourceCLI, 16, StatusSuccess, 100, time.Millisecond)
}
