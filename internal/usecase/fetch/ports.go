package fetch

import "context"

// FeedItem is one raw entry of a parsed feed, before any normalization.
type FeedItem struct {
	Title string
	Link  string
	// ISODate is the publication time normalized to ISO-8601 UTC, empty when the
	// feed's date could not be parsed.
	ISODate string
	// PubDate is the publication date exactly as the feed wrote it.
	PubDate string
}

// FeedFetcher retrieves and parses an RSS/Atom feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// LinkResolver turns an aggregator redirect link into the publisher's URL.
// Implementations never fail: on any problem they return the input unchanged.
type LinkResolver interface {
	Resolve(ctx context.Context, link string) string
}
