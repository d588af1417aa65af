// Package metrics provides the Prometheus collectors for the service.
//
// Collectors are registered with the default registry through promauto and
// exposed on /metrics. Callers use the Record* helpers rather than touching the
// vectors directly, so label sets stay consistent:
//   - HTTP request metrics (count, duration, size, in-flight)
//   - Feed fetch metrics per source id (duration, items, errors by type)
//   - Link resolution outcomes and latency
//   - Trends fetch outcomes
//   - Circuit breaker state transitions
//
// Example usage:
//
//	start := time.Now()
//	items, err := fetcher.Fetch(ctx, src.FeedURL)
//	if err != nil {
//	    metrics.RecordFeedFetchError(src.ID, "fetch_failed")
//	}
//	metrics.RecordFeedFetch(src.ID, time.Since(start), len(items))
package metrics
