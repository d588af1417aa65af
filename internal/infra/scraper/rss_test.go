package scraper_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"intl-news-desk/internal/infra/scraper"
	"intl-news-desk/internal/usecase/fetch"
)

const worldFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>國際</title>
    <link>https://news.example.com.tw/world</link>
    <item>
      <title>  美國聯準會宣布利率決策  </title>
      <link>https://news.example.com.tw/world/1 </link>
      <pubDate>Mon, 01 Jan 2024 08:00:00 +0800</pubDate>
    </item>
    <item>
      <title>日本強震</title>
      <link>https://news.example.com.tw/world/2</link>
      <pubDate>昨天 10:00</pubDate>
    </item>
    <item>
      <title>無日期</title>
      <link>https://news.example.com.tw/world/3</link>
    </item>
  </channel>
</rss>`

func newFetcher(timeout time.Duration) *scraper.RSSFetcher {
	cfg := scraper.DefaultConfig()
	cfg.Timeout = timeout
	return scraper.NewRSSFetcher(&http.Client{}, cfg)
}

func TestRSSFetcher_Fetch_Success(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(worldFeed))
	}))
	defer server.Close()

	items, err := newFetcher(5*time.Second).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotUA != "IntlNewsDeskBot/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept != "application/rss+xml, application/xml;q=0.9, */*;q=0.8" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if len(items) != 3 {
		t.Fatalf("items length = %d, want 3", len(items))
	}

	first := items[0]
	if !strings.Contains(first.Title, "美國聯準會宣布利率決策") {
		t.Errorf("items[0].Title = %q", first.Title)
	}
	if strings.TrimSpace(first.Link) != "https://news.example.com.tw/world/1" {
		t.Errorf("items[0].Link = %q", first.Link)
	}
	if first.ISODate != "2024-01-01T00:00:00.000Z" {
		t.Errorf("items[0].ISODate = %q, want %q", first.ISODate, "2024-01-01T00:00:00.000Z")
	}
	if first.PubDate != "Mon, 01 Jan 2024 08:00:00 +0800" {
		t.Errorf("items[0].PubDate = %q", first.PubDate)
	}

	if items[1].ISODate != "" {
		t.Errorf("items[1].ISODate = %q, want empty for unparseable date", items[1].ISODate)
	}
	if items[1].PubDate != "昨天 10:00" {
		t.Errorf("items[1].PubDate = %q, want raw value", items[1].PubDate)
	}

	if items[2].ISODate != "" || items[2].PubDate != "" {
		t.Errorf("items[2] dates = %q/%q, want both empty", items[2].ISODate, items[2].PubDate)
	}
}

func TestRSSFetcher_Fetch_Atom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom</title>
  <updated>2024-01-02T03:04:05Z</updated>
  <entry>
    <title>Atom Article</title>
    <link href="https://example.com/atom1"/>
    <published>2024-01-02T03:04:05Z</published>
    <updated>2024-01-02T03:04:05Z</updated>
  </entry>
</feed>`))
	}))
	defer server.Close()

	items, err := newFetcher(5*time.Second).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items length = %d, want 1", len(items))
	}
	if items[0].Link != "https://example.com/atom1" {
		t.Errorf("Link = %q", items[0].Link)
	}
	if items[0].ISODate != "2024-01-02T03:04:05.000Z" {
		t.Errorf("ISODate = %q", items[0].ISODate)
	}
}

func TestRSSFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		maxBody  int64
		wantErr  error
		wantType string
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErr:  fetch.ErrUnexpectedStatus,
			wantType: fetch.ErrorTypeStatus,
		},
		{
			name: "not a feed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html><body>maintenance</body></html>"))
			},
			wantErr:  fetch.ErrInvalidFeedFormat,
			wantType: fetch.ErrorTypeParse,
		},
		{
			name: "body too large",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
			},
			maxBody:  1024,
			wantErr:  fetch.ErrBodyTooLarge,
			wantType: fetch.ErrorTypeTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			cfg := scraper.DefaultConfig()
			if tt.maxBody > 0 {
				cfg.MaxBodySize = tt.maxBody
			}
			items, err := scraper.NewRSSFetcher(nil, cfg).Fetch(context.Background(), server.URL)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if items != nil {
				t.Errorf("items = %v, want nil", items)
			}
			if got := fetch.ClassifyError(err); got != tt.wantType {
				t.Errorf("ClassifyError() = %q, want %q", got, tt.wantType)
			}
		})
	}
}

func TestRSSFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	start := time.Now()
	_, err := newFetcher(50*time.Millisecond).Fetch(context.Background(), server.URL)

	if err == nil {
		t.Fatal("expected timeout error")
	}
	if got := fetch.ClassifyError(err); got != fetch.ErrorTypeTimeout {
		t.Errorf("ClassifyError() = %q, want %q (err=%v)", got, fetch.ErrorTypeTimeout, err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fetch took %v, want it bounded by the timeout", elapsed)
	}
}

func TestRSSFetcher_CircuitOpensPerFeed(t *testing.T) {
	var failingHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			failingHits.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(worldFeed))
	}))
	defer server.Close()

	fetcher := newFetcher(5 * time.Second)
	for i := 0; i < 5; i++ {
		_, _ = fetcher.Fetch(context.Background(), server.URL+"/down")
	}

	_, err := fetcher.Fetch(context.Background(), server.URL+"/down")
	if !errors.Is(err, fetch.ErrCircuitOpen) {
		t.Fatalf("error = %v, want ErrCircuitOpen", err)
	}
	if got := failingHits.Load(); got != 5 {
		t.Errorf("upstream hits = %d, want 5 (open breaker must not call out)", got)
	}

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/up"); err != nil {
		t.Errorf("sibling feed on the same host should not be affected: %v", err)
	}
	if open := fetcher.Breakers().OpenNames(); len(open) != 1 {
		t.Errorf("open breakers = %v, want exactly one", open)
	}
}

func TestRSSFetcher_HalfOpenAdmitsEveryFeedOnSharedHost(t *testing.T) {
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(worldFeed))
	}))
	defer server.Close()

	cfg := scraper.DefaultConfig()
	cfg.Timeout = 5 * time.Second
	cfg.Breaker.Timeout = 50 * time.Millisecond
	fetcher := scraper.NewRSSFetcher(&http.Client{}, cfg)

	feeds := make([]string, 6)
	for i := range feeds {
		feeds[i] = fmt.Sprintf("%s/rss/search?q=topic-%d", server.URL, i)
	}

	for _, feedURL := range feeds {
		for i := 0; i < 5; i++ {
			_, _ = fetcher.Fetch(context.Background(), feedURL)
		}
	}
	if open := fetcher.Breakers().OpenNames(); len(open) != len(feeds) {
		t.Fatalf("open breakers = %d, want %d", len(open), len(feeds))
	}

	healthy.Store(true)
	time.Sleep(4 * cfg.Breaker.Timeout)

	errs := make([]error, len(feeds))
	var wg sync.WaitGroup
	for i, feedURL := range feeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = fetcher.Fetch(context.Background(), feedURL)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("feed %d after recovery: %v", i, err)
		}
	}
}
