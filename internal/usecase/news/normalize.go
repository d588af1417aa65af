package news

import (
	"strings"

	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/usecase/fetch"

	"github.com/samber/lo"
)

// normalize keeps the first limit feed entries, trims title and link, picks the
// publication date and drops entries left without a title or link.
// Truncation happens before filtering, so fewer than limit items may remain.
func normalize(raw []fetch.FeedItem, limit int) []entity.NewsItem {
	if len(raw) > limit {
		raw = raw[:limit]
	}

	items := lo.Map(raw, func(it fetch.FeedItem, _ int) entity.NewsItem {
		return entity.NewsItem{
			Title:       strings.TrimSpace(it.Title),
			Link:        strings.TrimSpace(it.Link),
			PublishedAt: publishedAt(it),
		}
	})
	return lo.Filter(items, func(it entity.NewsItem, _ int) bool {
		return it.Title != "" && it.Link != ""
	})
}

// publishedAt prefers the normalized ISO date and falls back to the raw feed value.
// A blank result means the item has no publication time.
func publishedAt(it fetch.FeedItem) string {
	date := it.ISODate
	if date == "" {
		date = it.PubDate
	}
	return strings.TrimSpace(date)
}
