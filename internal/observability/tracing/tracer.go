package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies spans created by this service.
const instrumentationName = "intl-news-desk"

// GetTracer returns the tracer of the currently installed global provider.
// It is looked up on every call so that replacing the provider (tests, shutdown)
// takes effect immediately.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "trends.fetch")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
