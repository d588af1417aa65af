// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware starts a server span per request and returns its trace id in
// the X-Trace-Id header; the use case layer starts child spans per source fetch so a
// slow aggregation can be broken down by publisher.
//
// Example usage:
//
//	tp := tracing.NewProvider("intl-news-desk", version)
//	defer func() { _ = tp.Shutdown(context.Background()) }()
//
//	ctx, span := tracing.GetTracer().Start(ctx, "news.FetchNews")
//	defer span.End()
package tracing
