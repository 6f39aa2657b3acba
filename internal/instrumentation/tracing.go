package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used for every span.
const TracerName = "github.com/wadespear/outlook-chatgpt-addin"

// Span attribute keys.
const (
	SpanAttrIconSize   = "icon.size"
	SpanAttrIconText   = "icon.text"
	SpanAttrIconBytes  = "icon.bytes"
	SpanAttrIconSource = "icon.source"
	SpanAttrOutputDir  = "icon.output_dir"
	SpanAttrRequestID  = "http.request_id"
	SpanAttrHTTPStatus = "http.status_code"
)

// StartSpan starts a new span with the given name and attributes.
// The caller is responsible for ending the span with defer span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartIconSpan starts a span covering the render and encode of one icon.
func StartIconSpan(ctx context.Context, source string, size int, text string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "icon.generate",
		trace.WithAttributes(
			attribute.String(SpanAttrIconSource, source),
			attribute.Int(SpanAttrIconSize, size),
			attribute.String(SpanAttrIconText, text),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRequestSpan starts a server span for a dev server request.
func StartRequestSpan(ctx context.Context, method, path, requestID string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, method+" "+PathLabel(path),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.target", path),
			attribute.String(SpanAttrRequestID, requestID),
		),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// GetTraceID returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// SpanContextString returns "trace_id=X span_id=Y" or an empty string.
func SpanContextString(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return "trace_id=" + span.SpanContext().TraceID().String() +
		" span_id=" + span.SpanContext().SpanID().String()
}
