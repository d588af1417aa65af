package news

import (
	"log/slog"
	"net/http"
	"time"

	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/handler/http/respond"
	"intl-news-desk/internal/observability/logging"

	"github.com/gorilla/feeds"
)

// DefaultFeedTitle is the channel title of the RSS export.
const DefaultFeedTitle = "國際新聞"

// FeedHandler serves GET /api/feed.rss: the aggregate flattened into one RSS
// channel, source by source in configured order.
// An optional column query parameter (left or middle) restricts the sources.
type FeedHandler struct {
	Svc    Aggregator
	Title  string
	MaxAge time.Duration
	Stale  time.Duration
	Logger *slog.Logger
}

func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithRequestID(ctx, logger)

	var column entity.Column
	if raw := r.URL.Query().Get("column"); raw != "" {
		c, err := entity.ParseColumn(raw)
		if err != nil {
			logger.Warn("invalid column parameter", slog.String("column", raw))
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		column = c
	}

	resp := h.Svc.Aggregate(ctx)
	blocks := resp.Sources
	if column != "" {
		blocks = resp.FilterColumn(column)
	}

	feed := buildFeed(h.title(), siteURL(r), resp.UpdatedAt, blocks)
	body, err := feed.ToRss()
	if err != nil {
		logger.Error("failed to render rss", slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.CacheFor(w, h.MaxAge, h.Stale)
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (h FeedHandler) title() string {
	if h.Title == "" {
		return DefaultFeedTitle
	}
	return h.Title
}

func buildFeed(title, link string, updated time.Time, blocks []entity.SourceBlock) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: "International news from Taiwanese publishers",
		Created:     updated,
	}

	for _, b := range blocks {
		for _, it := range b.Items {
			feed.Items = append(feed.Items, &feeds.Item{
				Title:       it.Title,
				Link:        &feeds.Link{Href: it.Link},
				Id:          it.Link,
				Author:      &feeds.Author{Name: b.Name},
				Source:      &feeds.Link{Href: b.MoreURL},
				Description: b.Name,
				Created:     parsePublished(it.PublishedAt),
			})
		}
	}
	return feed
}

// parsePublished accepts the normalized ISO form and the RFC 1123 forms feeds
// carry raw. Anything else yields the zero time, which the RSS writer omits.
func parsePublished(s string) time.Time {
	for _, layout := range []string{time.RFC3339, time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func siteURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}
