package config

import (
	"net/url"
	"regexp"
	"strings"

	"intl-news-desk/internal/domain/entity"
)

const googleNewsSearch = "https://news.google.com/rss/search"

var hasWhen = regexp.MustCompile(`(?i)\bwhen:\d+d\b`)

// GoogleNewsRSS returns the Traditional Chinese (Taiwan) Google News search feed for query.
func GoogleNewsRSS(query string) string {
	q := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return googleNewsSearch + "?q=" + q + "&hl=zh-TW&gl=TW&ceid=TW:zh-Hant"
}

// GoogleNewsRSSRecent is GoogleNewsRSS restricted to the last window (e.g. "2d"),
// since search feeds otherwise mix in older stories. A query that already carries
// a when:Nd operator is left alone.
func GoogleNewsRSSRecent(query, window string) string {
	if window == "" {
		window = "2d"
	}
	if !hasWhen.MatchString(query) {
		query = query + " when:" + window
	}
	return GoogleNewsRSS(query)
}

// DefaultSources returns the built-in registry in display order: the left column
// top to bottom, then the middle column. Publishers with an official international
// feed use it; the rest go through a site-restricted Google News search.
func DefaultSources() []entity.Source {
	return []entity.Source{
		// left column
		{
			ID:      "cna",
			Name:    "中央社",
			Column:  entity.ColumnLeft,
			FeedURL: "https://feeds.feedburner.com/rsscna/intworld",
			MoreURL: "https://www.cna.com.tw/list/aopl.aspx",
		},
		{
			ID:      "ltn",
			Name:    "自由時報",
			Column:  entity.ColumnLeft,
			FeedURL: "https://news.ltn.com.tw/rss/world.xml",
			MoreURL: "https://news.ltn.com.tw/list/breakingnews/world",
		},
		{
			ID:      "nextapple",
			Name:    "壹蘋新聞網",
			Column:  entity.ColumnLeft,
			FeedURL: GoogleNewsRSSRecent("site:news.nextapple.com inurl:realtime/international", "2d"),
			MoreURL: "https://news.nextapple.com/realtime/international",
		},
		{
			ID:      "setn",
			Name:    "三立新聞網",
			Column:  entity.ColumnLeft,
			FeedURL: GoogleNewsRSSRecent("site:setn.com inurl:News.aspx (PageGroupID=5 OR pagegroupid=5)", "2d"),
			MoreURL: "https://www.setn.com/catalog.aspx?pagegroupid=5",
		},
		{
			ID:      "mirrordaily",
			Name:    "鏡報",
			Column:  entity.ColumnLeft,
			FeedURL: GoogleNewsRSSRecent("site:mirrordaily.news inurl:/section/int", "2d"),
			MoreURL: "https://www.mirrordaily.news/section/int",
		},

		// middle column
		{
			ID:      "udn",
			Name:    "聯合新聞網",
			Column:  entity.ColumnMiddle,
			FeedURL: "https://udn.com/news/rssfeed/7225",
			MoreURL: "https://udn.com/news/breaknews/1/5#breaknews",
		},
		{
			ID:      "chinatimes",
			Name:    "中時新聞網",
			Column:  entity.ColumnMiddle,
			FeedURL: GoogleNewsRSSRecent("site:chinatimes.com inurl:/world/", "2d"),
			MoreURL: "https://www.chinatimes.com/world/",
		},
		{
			ID:      "taisounds",
			Name:    "太報",
			Column:  entity.ColumnMiddle,
			FeedURL: GoogleNewsRSSRecent("site:taisounds.com section/83", "2d"),
			MoreURL: "https://www.taisounds.com/news/section/83",
		},
		{
			ID:      "tvbs",
			Name:    "TVBS",
			Column:  entity.ColumnMiddle,
			FeedURL: GoogleNewsRSSRecent("site:news.tvbs.com.tw inurl:/world/", "1d"),
			MoreURL: "https://news.tvbs.com.tw/world",
		},
		{
			ID:      "ctwant",
			Name:    "周刊王（CTWANT）",
			Column:  entity.ColumnMiddle,
			FeedURL: GoogleNewsRSSRecent("site:ctwant.com (國際 OR 國外 OR world)", "2d"),
			MoreURL: "https://www.ctwant.com/",
		},
		{
			ID:      "worldjournal",
			Name:    "世界日報",
			Column:  entity.ColumnMiddle,
			FeedURL: "https://www.worldjournal.com/wj/rssfeed/121010",
			MoreURL: "https://www.worldjournal.com/wj/cate/breaking",
		},
	}
}

// FilterColumn returns the sources rendered in column c, keeping registry order.
func FilterColumn(sources []entity.Source, c entity.Column) []entity.Source {
	out := make([]entity.Source, 0, len(sources))
	for _, s := range sources {
		if s.Column == c {
			out = append(out, s)
		}
	}
	return out
}
