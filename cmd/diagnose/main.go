// Package main provides a CLI that fetches every configured source once and prints
// a per-source report: item count, resolvable links, latency and failure class.
// Usage: intl-news-diagnose [--source id] [--resolve] [--output json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"intl-news-desk/internal/config"
	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/handler/http/respond"
	"intl-news-desk/internal/infra/fetcher"
	"intl-news-desk/internal/infra/scraper"
	"intl-news-desk/internal/observability/logging"
	"intl-news-desk/internal/usecase/fetch"
	newsUC "intl-news-desk/internal/usecase/news"

	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		sourceID     string
		resolve      bool
		outputFormat string
		parallelism  int
	)

	flag.StringVar(&sourceID, "source", "", "Only probe the source with this id")
	flag.BoolVar(&resolve, "resolve", false, "Also resolve redirect links, as the API does")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.IntVar(&parallelism, "parallel", 4, "Number of sources probed at once")
	flag.Parse()

	cfg := config.Load()
	// Keep stdout for the report.
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: "text", Writer: os.Stderr})
	slog.SetDefault(logger)

	sources, err := cfg.Sources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load sources: %v\n", err)
		os.Exit(1)
	}
	if sourceID != "" {
		sources = selectSource(sources, sourceID)
		if len(sources) == 0 {
			fmt.Fprintf(os.Stderr, "Error: unknown source %q\n", sourceID)
			os.Exit(1)
		}
	}

	scraperCfg := scraper.DefaultConfig()
	scraperCfg.Timeout = cfg.FeedTimeout
	feedFetcher := scraper.NewRSSFetcher(&http.Client{}, scraperCfg)

	linkResolver, err := fetcher.NewLinkResolver(cfg.Resolver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := prober{
		fetcher: feedFetcher,
		matches: linkResolver.Matches,
		limit:   cfg.FeedItemLimit,
	}
	if resolve {
		p.resolver = linkResolver
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	results := p.probeAll(ctx, sources, parallelism)

	if err := writeReport(os.Stdout, outputFormat, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Error != "" {
			os.Exit(2)
		}
	}
}

func selectSource(sources []entity.Source, id string) []entity.Source {
	for _, s := range sources {
		if s.ID == id {
			return []entity.Source{s}
		}
	}
	return nil
}

// Result is the outcome of probing one source.
type Result struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Column     string `json:"column"`
	Raw        int    `json:"raw"`
	Items      int    `json:"items"`
	Resolvable int    `json:"resolvable"`
	Resolved   int    `json:"resolved"`
	LatencyMS  int64  `json:"latency_ms"`
	ErrorType  string `json:"error_type,omitempty"`
	Error      string `json:"error,omitempty"`
}

type prober struct {
	fetcher  fetch.FeedFetcher
	resolver fetch.LinkResolver
	// matches reports links the resolver would follow; nil counts none.
	matches  func(link string) bool
	limit    int
}

// probeAll probes sources with at most parallelism in flight; results keep source order.
func (p prober) probeAll(ctx context.Context, sources []entity.Source, parallelism int) []Result {
	if parallelism < 1 {
		parallelism = 1
	}
	results := make([]Result, len(sources))

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = p.probe(ctx, src)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// probe fetches src directly so the failure is visible instead of swallowed into an
// empty list, then runs the same normalization the API applies.
func (p prober) probe(ctx context.Context, src entity.Source) Result {
	res := Result{ID: src.ID, Name: src.Name, Column: string(src.Column)}

	start := time.Now()
	raw, err := p.fetcher.Fetch(ctx, src.FeedURL)
	res.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		res.ErrorType = fetch.ClassifyError(err)
		res.Error = respond.SanitizeError(err)
		return res
	}
	res.Raw = len(raw)

	resolver := &countingResolver{next: p.resolver, matches: p.matches}
	svc := newsUC.NewService(staticFetcher(raw), resolver, nil, newsUC.Config{
		ItemLimit:          p.limit,
		ResolveParallelism: newsUC.DefaultResolveParallelism,
	})
	res.Items = len(svc.FetchNews(ctx, src))
	res.Resolvable = int(resolver.matched.Load())
	res.Resolved = int(resolver.changed.Load())

	res.LatencyMS = time.Since(start).Milliseconds()
	return res
}

// staticFetcher replays an already fetched feed.
type staticFetcher []fetch.FeedItem

func (s staticFetcher) Fetch(_ context.Context, _ string) ([]fetch.FeedItem, error) {
	return s, nil
}

// countingResolver counts links matching the resolver pattern and links the wrapped
// resolver rewrote. A nil next leaves links unchanged.
type countingResolver struct {
	next    fetch.LinkResolver
	matches func(link string) bool
	matched atomic.Int64
	changed atomic.Int64
}

func (c *countingResolver) Resolve(ctx context.Context, link string) string {
	if c.matches != nil && c.matches(link) {
		c.matched.Add(1)
	}
	if c.next == nil {
		return link
	}
	out := c.next.Resolve(ctx, link)
	if out != link {
		c.changed.Add(1)
	}
	return out
}

func writeReport(w io.Writer, format string, results []Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "text", "":
		_, err := io.WriteString(w, renderTable(results))
		return err
	default:
		return fmt.Errorf("unknown output format %q (must be text or json)", format)
	}
}
