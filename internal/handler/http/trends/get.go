package trends

import (
	"log/slog"
	"net/http"
	"time"

	"intl-news-desk/internal/handler/http/respond"
	"intl-news-desk/internal/observability/logging"
)

// GetHandler serves GET /api/trends.
type GetHandler struct {
	Svc    Snapshotter
	MaxAge time.Duration
	Stale  time.Duration
	Logger *slog.Logger
}

// ServeHTTP answers 200 even when the trends feed failed, with an empty list.
// Only a fresh answer carries the shared-cache directive so edge caches do not
// hold on to an empty sidebar.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, fresh := h.Svc.Snapshot(ctx)

	if fresh {
		respond.CacheFor(w, h.MaxAge, h.Stale)
	} else {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logging.WithRequestID(ctx, logger).Warn("serving empty trends")
	}
	respond.JSON(w, http.StatusOK, toResponseDTO(resp))
}
