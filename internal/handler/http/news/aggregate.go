package news

import (
	"log/slog"
	"net/http"
	"time"

	"intl-news-desk/internal/handler/http/respond"
	"intl-news-desk/internal/observability/logging"
)

// AggregateHandler serves GET /api/aggregate.
type AggregateHandler struct {
	Svc    Aggregator
	MaxAge time.Duration
	Stale  time.Duration
	Logger *slog.Logger
}

// ServeHTTP always answers 200: sources whose feed failed are present with no items.
func (h AggregateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	resp := h.Svc.Aggregate(ctx)

	empty := 0
	for _, b := range resp.Sources {
		if len(b.Items) == 0 {
			empty++
		}
	}
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logging.WithRequestID(ctx, logger).Info("aggregate assembled",
		slog.Int("sources", len(resp.Sources)),
		slog.Int("empty_sources", empty),
		slog.Duration("duration", time.Since(start)))

	respond.CacheFor(w, h.MaxAge, h.Stale)
	respond.JSON(w, http.StatusOK, toAggregateDTO(resp))
}
