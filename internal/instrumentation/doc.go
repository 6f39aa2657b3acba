// Package instrumentation provides OpenTelemetry metrics and tracing for the
// add-in tooling.
//
// # Metrics
//
// Dev server:
//   - http_requests_total: requests by method, path label and status
//   - http_request_duration_seconds: request latency
//
// Icons:
//   - icon_generations_total: renders by source (cli, server), size label and status
//   - icon_generation_duration_seconds: render + encode latency
//   - icon_bytes: encoded PNG size
//
// Path and size labels are collapsed by PathLabel and SizeLabel unless
// METRICS_DETAILED_LABELS=true.
//
// # Tracing
//
// Spans are created for each icon render (icon.generate) and each dev server
// request. The default tracing exporter is "none".
//
// # Configuration
//
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_EXPORTER_OTLP_INSECURE: plain HTTP for OTLP (default: false)
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: outlook-chatgpt-addin)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordIconGeneration(ctx, instrumentation.SourceCLI, 64,
//		instrumentation.StatusSuccess, len(data), time.Since(start))
package instrumentation
