package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"regexp"
	"time"

	"intl-news-desk/internal/handler/http/respond"
	"intl-news-desk/internal/observability/metrics"
	"intl-news-desk/internal/observability/tracing"
	"intl-news-desk/internal/resilience/circuitbreaker"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// LinkResolver implements fetch.LinkResolver by following the redirect chain of
// aggregator links with a GET request (some publishers answer HEAD with 405).
//
// Features:
//   - Links not matching the host pattern are returned without a network call
//   - Circuit breaker: while open, links are returned unchanged without a network call
//   - Redirect cap and redirect target validation
//   - HTML fallback for interstitial pages that never redirect
//
// Thread safety: LinkResolver is safe for concurrent use.
type LinkResolver struct {
	client  *http.Client
	cfg     ResolverConfig
	pattern *regexp.Regexp
	breaker *circuitbreaker.CircuitBreaker
}

// Option customizes a LinkResolver.
type Option func(*LinkResolver)

// WithTransport replaces the HTTP transport. Redirect policy is kept.
func WithTransport(rt http.RoundTripper) Option {
	return func(r *LinkResolver) {
		r.client.Transport = rt
	}
}

// WithBreaker replaces the circuit breaker.
func WithBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(r *LinkResolver) {
		r.breaker = cb
	}
}

// NewLinkResolver creates a LinkResolver. It fails only when cfg is invalid.
func NewLinkResolver(cfg ResolverConfig, opts ...Option) (*LinkResolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resolver config: %w", err)
	}

	r := &LinkResolver{
		cfg:     cfg,
		pattern: regexp.MustCompile(cfg.HostPattern),
		breaker: circuitbreaker.New(circuitbreaker.LinkResolveConfig()),
	}
	r.client = &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= r.cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			return validateRedirect(req.URL, r.cfg.DenyPrivateIPs)
		},
	}

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Breaker exposes the resolver's circuit breaker for health reporting.
func (r *LinkResolver) Breaker() *circuitbreaker.CircuitBreaker {
	return r.breaker
}

// Matches reports whether link would be resolved.
func (r *LinkResolver) Matches(link string) bool {
	return r.pattern.MatchString(link)
}

// Resolve returns the URL that link finally points to.
// Any failure returns link unchanged; Resolve never reports an error.
func (r *LinkResolver) Resolve(ctx context.Context, link string) string {
	if !r.pattern.MatchString(link) {
		metrics.RecordLinkResolution(metrics.ResolveSkipped, 0)
		return link
	}

	ctx, span := tracing.GetTracer().Start(ctx, "fetcher.Resolve")
	defer span.End()

	start := time.Now()
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.follow(ctx, link)
	})
	duration := time.Since(start)

	if err != nil {
		if circuitbreaker.IsRejection(err) {
			metrics.RecordLinkResolution(metrics.ResolveCircuitOpen, duration)
			span.SetAttributes(attribute.String("resolve.result", metrics.ResolveCircuitOpen))
			return link
		}
		slog.Debug("link resolution failed, keeping original",
			slog.String("link", respond.SanitizeString(link)),
			slog.String("error", respond.SanitizeError(err)))
		metrics.RecordLinkResolution(metrics.ResolveFailed, duration)
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve failed")
		return link
	}

	final := result.(string)
	outcome := metrics.ResolveResolved
	if final == link {
		outcome = metrics.ResolveUnchanged
	}
	metrics.RecordLinkResolution(outcome, duration)
	span.SetAttributes(attribute.String("resolve.result", outcome))
	return final
}

// follow performs one GET with redirects and returns the final URL.
// The response status is not inspected: the URL the chain ended on is the answer.
func (r *LinkResolver) follow(ctx context.Context, link string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.Request == nil || resp.Request.URL == nil {
		return link, nil
	}
	final := resp.Request.URL

	if r.cfg.HTMLFallback && r.pattern.MatchString(final.String()) && isHTML(resp.Header.Get("Content-Type")) {
		body := io.LimitReader(resp.Body, r.cfg.MaxBodySize)
		if target := extractTarget(body, final, r.pattern); target != "" {
			return target, nil
		}
	}
	return final.String(), nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
