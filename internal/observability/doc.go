// Package observability holds the logging, metrics and tracing infrastructure.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus collectors and Record* helpers
//   - tracing: OpenTelemetry tracer, provider setup and HTTP middleware
//
// Example usage:
//
//	import (
//	    "intl-news-desk/internal/observability/logging"
//	    "intl-news-desk/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.New(logging.Options{Level: "info"})
//	    logger.Info("application started")
//
//	    metrics.RecordFeedFetch("cna", 420*time.Millisecond, 10)
//	}
package observability
