// Package news implements the per-source feed pipeline and the aggregation
// of every configured source into one response.
package news

import (
	"context"
	"log/slog"
	"time"

	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/handler/http/respond"
	"intl-news-desk/internal/observability/logging"
	"intl-news-desk/internal/observability/metrics"
	"intl-news-desk/internal/observability/tracing"
	"intl-news-desk/internal/usecase/fetch"
	"intl-news-desk/internal/utils/parallel"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultItemLimit is the number of feed entries considered per source.
	DefaultItemLimit = 10
	// DefaultResolveParallelism caps link resolutions in flight per source.
	DefaultResolveParallelism = 5
)

// Config tunes the per-source pipeline.
type Config struct {
	ItemLimit          int
	ResolveParallelism int
}

// DefaultConfig returns the production pipeline settings.
func DefaultConfig() Config {
	return Config{
		ItemLimit:          DefaultItemLimit,
		ResolveParallelism: DefaultResolveParallelism,
	}
}

// Service fetches, normalizes and resolves news for the configured sources.
type Service struct {
	Fetcher  fetch.FeedFetcher
	Resolver fetch.LinkResolver
	Sources  []entity.Source
	Config   Config

	// Now stamps UpdatedAt. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a news Service. Zero values in cfg are replaced with defaults.
func NewService(fetcher fetch.FeedFetcher, resolver fetch.LinkResolver, sources []entity.Source, cfg Config) *Service {
	if cfg.ItemLimit < 1 {
		cfg.ItemLimit = DefaultItemLimit
	}
	if cfg.ResolveParallelism < 1 {
		cfg.ResolveParallelism = DefaultResolveParallelism
	}
	return &Service{
		Fetcher:  fetcher,
		Resolver: resolver,
		Sources:  sources,
		Config:   cfg,
		Now:      time.Now,
	}
}

// FetchNews returns the normalized items of one source with their links resolved.
// It never fails: any fetch or parse error is logged, counted and turned into an
// empty list so that one broken publisher cannot take down the page.
func (s *Service) FetchNews(ctx context.Context, src entity.Source) []entity.NewsItem {
	ctx, span := tracing.GetTracer().Start(ctx, "news.FetchNews")
	defer span.End()
	span.SetAttributes(attribute.String("source.id", src.ID))

	start := time.Now()
	items, err := s.fetchNews(ctx, src)
	if err != nil {
		errorType := fetch.ClassifyError(err)
		logging.WithRequestID(ctx, logging.FromContext(ctx)).Warn("feed fetch failed, serving empty block",
			slog.String("source_id", src.ID),
			slog.String("error_type", errorType),
			slog.String("error", respond.SanitizeError(err)))
		metrics.RecordFeedFetchError(src.ID, errorType)
		span.RecordError(err)
		span.SetStatus(codes.Error, errorType)
		return []entity.NewsItem{}
	}

	metrics.RecordFeedFetch(src.ID, time.Since(start), len(items))
	span.SetAttributes(attribute.Int("source.items", len(items)))
	return items
}

func (s *Service) fetchNews(ctx context.Context, src entity.Source) ([]entity.NewsItem, error) {
	raw, err := s.Fetcher.Fetch(ctx, src.FeedURL)
	if err != nil {
		return nil, err
	}

	items := normalize(raw, s.Config.ItemLimit)
	return parallel.MapLimit(ctx, items, s.Config.ResolveParallelism,
		func(ctx context.Context, it entity.NewsItem) (entity.NewsItem, error) {
			it.Link = s.Resolver.Resolve(ctx, it.Link)
			return it, nil
		})
}

// Aggregate fetches every configured source concurrently and assembles the
// response in configured order. UpdatedAt is stamped after all sources finished.
func (s *Service) Aggregate(ctx context.Context) entity.AggregateResponse {
	ctx, span := tracing.GetTracer().Start(ctx, "news.Aggregate")
	defer span.End()
	span.SetAttributes(attribute.Int("sources", len(s.Sources)))

	blocks := make([]entity.SourceBlock, len(s.Sources))
	var g errgroup.Group
	for i, src := range s.Sources {
		g.Go(func() error {
			blocks[i] = entity.NewSourceBlock(src, s.FetchNews(ctx, src))
			return nil
		})
	}
	_ = g.Wait()

	return entity.AggregateResponse{
		UpdatedAt: s.now().UTC(),
		Sources:   blocks,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
