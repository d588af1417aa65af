// Package pathutil maps request paths onto a bounded set of route labels for
// metrics and span names.
package pathutil

import "strings"

// Other is the label used for any path that is not a registered route.
const Other = "/other"

// routes lists every path the server registers. Anything else collapses into Other
// so that scanners probing random URLs cannot blow up label cardinality.
var routes = map[string]struct{}{
	"/":              {},
	"/api/aggregate": {},
	"/api/trends":    {},
	"/api/feed.rss":  {},
	"/health":        {},
	"/ready":         {},
	"/live":          {},
	"/metrics":       {},
}

// NormalizePath returns the route label for path.
//
// Query strings and a trailing slash are ignored:
//
//	NormalizePath("/api/aggregate")       // "/api/aggregate"
//	NormalizePath("/api/trends/")         // "/api/trends"
//	NormalizePath("/api/feed.rss?column=left") // "/api/feed.rss"
//	NormalizePath("/.env")                // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := routes[path]; ok {
		return path
	}
	return Other
}

// ExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func ExpectedCardinality() int {
	return len(routes) + 1
}
