// Package scraper provides the RSS/Atom feed fetcher.
// It uses the gofeed library to parse feed content behind per-feed circuit breakers.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/observability/tracing"
	"intl-news-desk/internal/resilience/circuitbreaker"
	"intl-news-desk/internal/usecase/fetch"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RSSFetcher implements fetch.FeedFetcher using the gofeed library.
// Each feed URL gets its own circuit breaker; many sources share one host. A fetch is a
// single attempt.
type RSSFetcher struct {
	client   *http.Client
	cfg      Config
	breakers *circuitbreaker.Group
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// A nil client gets http.DefaultClient; the per-request timeout comes from cfg.
func NewRSSFetcher(client *http.Client, cfg Config) *RSSFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = circuitbreaker.FeedFetchConfig()
	}
	return &RSSFetcher{
		client:   client,
		cfg:      cfg,
		breakers: circuitbreaker.NewGroup(cfg.Breaker),
	}
}

// Breakers exposes the per-feed breakers for health reporting.
func (f *RSSFetcher) Breakers() *circuitbreaker.Group {
	return f.breakers
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// Items are returned in feed order, untrimmed and unfiltered.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]fetch.FeedItem, error) {
	host := hostOf(feedURL)

	ctx, span := tracing.GetTracer().Start(ctx, "scraper.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("feed.host", host), attribute.String("feed.url", feedURL))

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	result, err := f.breakers.Get(feedURL).Execute(func() (interface{}, error) {
		return f.doFetch(ctx, feedURL)
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			err = fmt.Errorf("%w: %s: %w", fetch.ErrCircuitOpen, host, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, fetch.ClassifyError(err))
		return nil, err
	}

	items := result.([]fetch.FeedItem)
	span.SetAttributes(attribute.Int("feed.items", len(items)))
	return items, nil
}

// doFetch performs one request and parse without the circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]fetch.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fetch.ErrFeedFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", f.cfg.Accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fetch.ErrFeedFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", fetch.ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", fetch.ErrFeedFetchFailed, err)
	}
	if int64(len(body)) > f.cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: limit %d bytes", fetch.ErrBodyTooLarge, f.cfg.MaxBodySize)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fetch.ErrInvalidFeedFormat, err)
	}

	items := make([]fetch.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		items = append(items, toFeedItem(it))
	}
	return items, nil
}

func toFeedItem(it *gofeed.Item) fetch.FeedItem {
	item := fetch.FeedItem{
		Title:   it.Title,
		Link:    it.Link,
		PubDate: it.Published,
	}
	if item.Link == "" && len(it.Links) > 0 {
		item.Link = it.Links[0]
	}
	if item.PubDate == "" {
		item.PubDate = it.Updated
	}

	switch {
	case it.PublishedParsed != nil:
		item.ISODate = it.PublishedParsed.UTC().Format(entity.ISOLayout)
	case it.UpdatedParsed != nil:
		item.ISODate = it.UpdatedParsed.UTC().Format(entity.ISOLayout)
	}
	return item
}

// hostOf returns the lower-cased host of rawURL, or "invalid" when it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return strings.ToLower(u.Host)
}
