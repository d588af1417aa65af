package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Link resolution outcomes.
const (
	ResolveSkipped     = "skipped"      // link did not match the redirect-host pattern
	ResolveResolved    = "resolved"     // final URL differs from the input
	ResolveUnchanged   = "unchanged"    // request succeeded but landed on the same URL
	ResolveFailed      = "failed"       // request failed, original link kept
	ResolveCircuitOpen = "circuit_open" // breaker refused the call, original link kept
)

// Business metrics track feed aggregation
var (
	// FeedFetchDuration measures time to fetch, normalize and resolve one source
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to fetch and normalize a feed source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 9),
		},
		[]string{"source_id"},
	)

	// FeedItemsServedTotal counts items returned per source
	FeedItemsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_served_total",
			Help: "Total number of normalized items returned per source",
		},
		[]string{"source_id"},
	)

	// FeedFetchErrors counts feed fetches that degraded to an empty list
	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetches that failed and returned no items",
		},
		[]string{"source_id", "error_type"},
	)

	// LinkResolutionsTotal counts link resolution outcomes
	LinkResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_resolutions_total",
			Help: "Total number of link resolutions by result",
		},
		[]string{"result"},
	)

	// LinkResolutionDuration measures time spent on networked resolutions
	LinkResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "link_resolution_duration_seconds",
			Help:    "Time taken to resolve a redirect link",
			Buckets: []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// TrendsFetchTotal counts trends fetches by result
	TrendsFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trends_fetch_total",
			Help: "Total number of trends feed fetches by result",
		},
		[]string{"result"},
	)

	// CircuitBreakerTransitions counts circuit breaker state changes
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"circuit", "to"},
	)
)

// RecordFeedFetch records a successful source fetch and the number of items it produced.
func RecordFeedFetch(sourceID string, duration time.Duration, items int) {
	FeedFetchDuration.WithLabelValues(sourceID).Observe(duration.Seconds())
	FeedItemsServedTotal.WithLabelValues(sourceID).Add(float64(items))
}

// RecordFeedFetchError records a source fetch that degraded to an empty list.
func RecordFeedFetchError(sourceID, errorType string) {
	FeedFetchErrors.WithLabelValues(sourceID, errorType).Inc()
}

// RecordLinkResolution records the outcome of one link resolution.
// Duration is only observed for outcomes that touched the network.
func RecordLinkResolution(result string, duration time.Duration) {
	LinkResolutionsTotal.WithLabelValues(result).Inc()
	if result == ResolveResolved || result == ResolveUnchanged || result == ResolveFailed {
		LinkResolutionDuration.Observe(duration.Seconds())
	}
}

// RecordTrendsFetch records whether the trends feed answered.
func RecordTrendsFetch(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	TrendsFetchTotal.WithLabelValues(result).Inc()
}

// RecordCircuitBreakerStateChange records a breaker moving into state to.
func RecordCircuitBreakerStateChange(circuit, to string) {
	CircuitBreakerTransitions.WithLabelValues(circuit, to).Inc()
}
