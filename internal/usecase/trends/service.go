// Package trends builds the trending-keywords sidebar from the daily trends feed.
package trends

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/handler/http/respond"
	"intl-news-desk/internal/observability/logging"
	"intl-news-desk/internal/observability/metrics"
	"intl-news-desk/internal/observability/tracing"
	"intl-news-desk/internal/usecase/fetch"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultFeedURL is the Taiwan daily trending searches feed.
	DefaultFeedURL = "https://trends.google.com/trends/trendingsearches/daily/rss?geo=TW&hl=zh-TW"
	// DefaultFallbackLink is used for entries that carry no link of their own.
	DefaultFallbackLink = "https://trends.google.com/trending?geo=TW&hl=zh-TW"
	// DefaultLimit is the number of keywords shown.
	DefaultLimit = 10
)

// Service fetches trending keywords.
type Service struct {
	Fetcher      fetch.FeedFetcher
	FeedURL      string
	FallbackLink string
	Limit        int

	// Now stamps UpdatedAt. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a trends Service. Empty arguments fall back to the defaults.
func NewService(fetcher fetch.FeedFetcher, feedURL, fallbackLink string) *Service {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	if fallbackLink == "" {
		fallbackLink = DefaultFallbackLink
	}
	return &Service{
		Fetcher:      fetcher,
		FeedURL:      feedURL,
		FallbackLink: fallbackLink,
		Limit:        DefaultLimit,
		Now:          time.Now,
	}
}

// FetchTrends returns up to Limit ranked keywords, or an empty list when the feed
// cannot be fetched or parsed.
func (s *Service) FetchTrends(ctx context.Context) []entity.TrendEntry {
	trends, _ := s.fetch(ctx)
	return trends
}

// Snapshot returns the trends envelope and whether the upstream feed answered.
// Callers use fresh to decide whether the response may be cached.
func (s *Service) Snapshot(ctx context.Context) (entity.TrendsResponse, bool) {
	trends, ok := s.fetch(ctx)
	return entity.TrendsResponse{
		UpdatedAt: s.now().UTC(),
		Trends:    trends,
	}, ok
}

func (s *Service) fetch(ctx context.Context) ([]entity.TrendEntry, bool) {
	ctx, span := tracing.GetTracer().Start(ctx, "trends.Fetch")
	defer span.End()

	raw, err := s.Fetcher.Fetch(ctx, s.FeedURL)
	if err != nil {
		errorType := fetch.ClassifyError(err)
		logging.WithRequestID(ctx, logging.FromContext(ctx)).Warn("trends fetch failed, serving empty list",
			slog.String("error_type", errorType),
			slog.String("error", respond.SanitizeError(err)))
		metrics.RecordTrendsFetch(false)
		span.RecordError(err)
		span.SetStatus(codes.Error, errorType)
		return []entity.TrendEntry{}, false
	}

	metrics.RecordTrendsFetch(true)
	trends := s.rank(raw)
	span.SetAttributes(attribute.Int("trends.count", len(trends)))
	return trends, true
}

// rank keeps the first Limit entries. Rank is the position in that list, so an
// entry with an empty title still occupies its rank.
func (s *Service) rank(raw []fetch.FeedItem) []entity.TrendEntry {
	limit := s.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if len(raw) > limit {
		raw = raw[:limit]
	}

	out := make([]entity.TrendEntry, len(raw))
	for i, it := range raw {
		link := strings.TrimSpace(it.Link)
		if link == "" {
			link = s.FallbackLink
		}
		out[i] = entity.TrendEntry{
			Rank:    i + 1,
			Keyword: strings.TrimSpace(it.Title),
			Link:    link,
		}
	}
	return out
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
