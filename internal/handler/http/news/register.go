package news

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"intl-news-desk/internal/domain/entity"
)

// Aggregator assembles the current news columns.
type Aggregator interface {
	Aggregate(ctx context.Context) entity.AggregateResponse
}

// Register registers the news handlers with the given mux.
// maxAge and stale set the shared-cache directive on successful responses.
func Register(mux *http.ServeMux, svc Aggregator, maxAge, stale time.Duration, logger *slog.Logger) {
	mux.Handle("GET /api/aggregate", AggregateHandler{
		Svc:    svc,
		MaxAge: maxAge,
		Stale:  stale,
		Logger: logger,
	})
	mux.Handle("GET /api/feed.rss", FeedHandler{
		Svc:    svc,
		Title:  DefaultFeedTitle,
		MaxAge: maxAge,
		Stale:  stale,
		Logger: logger,
	})
}
