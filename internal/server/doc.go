// Package server provides the HTTPS development server used to sideload the
// add-in into Outlook.
//
// # Key Components
//
// DevServer serves the add-in assets over HTTPS:
//   - StaticHandler: files under the project root with CORS headers, "/"
//     mapped to the task pane page
//   - IconHandler: /icons/icon-<size>.png rendered on the fly
//   - HealthChecker: /healthz, /readyz and /healthz/detailed
//
// Every request passes through WithRequestLogging, which assigns an
// X-Request-ID, starts a span, writes an access log line and records the
// HTTP metrics.
//
// FindCertificate locates the localhost certificate pair, preferring the one
// installed by office-addin-dev-certs over <root>/certs.
//
// MetricsServer exposes Prometheus metrics on a dedicated port.
package server
