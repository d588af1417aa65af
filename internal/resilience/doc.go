// Package resilience groups the fault tolerance patterns used for outbound calls.
//
// Feed publishers and the redirect host are third parties that fail or stall. Each
// call is made once (there is no retry layer); repeated failures trip
// a circuit breaker so later aggregations skip the dead upstream quickly and fall
// back to their empty or unresolved defaults.
//
// Usage Example:
//
//	group := circuitbreaker.NewGroup(circuitbreaker.FeedFetchConfig())
//	result, err := group.Get(feedURL).Execute(func() (interface{}, error) {
//	    return fetchFeed(ctx, feedURL)
//	})
package resilience
