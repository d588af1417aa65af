package trends

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"intl-news-desk/internal/domain/entity"
)

// Snapshotter returns the current trends and whether upstream answered.
type Snapshotter interface {
	Snapshot(ctx context.Context) (entity.TrendsResponse, bool)
}

// Register registers the trends handler with the given mux.
func Register(mux *http.ServeMux, svc Snapshotter, maxAge, stale time.Duration, logger *slog.Logger) {
	mux.Handle("GET /api/trends", GetHandler{
		Svc:    svc,
		MaxAge: maxAge,
		Stale:  stale,
		Logger: logger,
	})
}
