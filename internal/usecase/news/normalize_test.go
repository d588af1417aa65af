package news

import (
	"testing"

	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/usecase/fetch"

	"github.com/google/go-cmp/cmp"
)

func TestPublishedAt(t *testing.T) {
	tests := []struct {
		name string
		item fetch.FeedItem
		want string
	}{
		{name: "iso preferred", item: fetch.FeedItem{ISODate: "2024-01-01T00:00:00.000Z", PubDate: "Mon, 01 Jan 2024"}, want: "2024-01-01T00:00:00.000Z"},
		{name: "raw fallback", item: fetch.FeedItem{PubDate: "2024年1月1日"}, want: "2024年1月1日"},
		{name: "raw fallback trimmed", item: fetch.FeedItem{PubDate: "  Mon, 01 Jan 2024 08:00:00 +0800\n"}, want: "Mon, 01 Jan 2024 08:00:00 +0800"},
		{name: "blank raw is absent", item: fetch.FeedItem{PubDate: " \t "}, want: ""},
		{name: "absent", item: fetch.FeedItem{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := publishedAt(tt.item); got != tt.want {
				t.Errorf("publishedAt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_KeepsFeedOrder(t *testing.T) {
	raw := []fetch.FeedItem{
		{Title: "third", Link: "https://a/3"},
		{Title: "first", Link: "https://a/1"},
		{Title: "second", Link: "https://a/2"},
	}

	got := normalize(raw, 2)

	want := []entity.NewsItem{
		{Title: "third", Link: "https://a/3"},
		{Title: "first", Link: "https://a/1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalize() mismatch (-want +got):\n%s", diff)
	}
}
