// Package config assembles the process configuration: the application settings read
// from the environment and the source registry (built-in or loaded from a YAML file).
package config

import (
	"errors"
	"fmt"
	"time"

	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/infra/fetcher"
	"intl-news-desk/internal/usecase/trends"
	pkgconfig "intl-news-desk/pkg/config"
)

// MaxFeedItemLimit bounds how many items a source block may carry.
const MaxFeedItemLimit = 10

// Config holds every setting the API server needs at startup.
type Config struct {
	// HTTP
	Addr            string
	ShutdownTimeout time.Duration
	MaxRequestBody  int64

	// Logging
	LogLevel  string
	LogFormat string
	Version   string

	// Upstream
	FeedTimeout        time.Duration
	FeedItemLimit      int
	ResolveParallelism int
	TrendsFeedURL      string
	TrendsFallbackURL  string
	SourcesFile        string
	Resolver           fetcher.ResolverConfig

	// Inbound rate limiting
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
	TrustProxy       bool

	// Response caching directive
	CacheMaxAge time.Duration
	CacheStale  time.Duration
}

// Load reads the configuration from environment variables.
// Invalid values fall back to defaults with a warning; Validate catches values that
// parse but are out of range.
//
// Environment variables:
//   - HTTP_ADDR (default ":8080"), SHUTDOWN_TIMEOUT (10s), MAX_REQUEST_BODY (1MB)
//   - LOG_LEVEL (info), LOG_FORMAT (json), VERSION (dev)
//   - FEED_TIMEOUT (12s), FEED_ITEM_LIMIT (10), RESOLVE_PARALLELISM (5)
//   - TRENDS_FEED_URL, TRENDS_FALLBACK_URL
//   - SOURCES_FILE: YAML registry replacing the built-in sources
//   - RATE_LIMIT_ENABLED (true), RATE_LIMIT_RPS (2), RATE_LIMIT_BURST (10), TRUST_PROXY (false)
//   - CACHE_MAX_AGE (5m), CACHE_STALE (5m)
//   - RESOLVE_* (see fetcher.LoadConfigFromEnv)
func Load() Config {
	resolver := fetcher.LoadConfigFromEnv()

	return Config{
		Addr:            pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
		ShutdownTimeout: pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBody:  int64(pkgconfig.GetEnvInt("MAX_REQUEST_BODY", 1<<20)),

		LogLevel:  pkgconfig.GetEnvString("LOG_LEVEL", "info"),
		LogFormat: pkgconfig.GetEnvString("LOG_FORMAT", "json"),
		Version:   pkgconfig.GetEnvString("VERSION", "dev"),

		FeedTimeout:        pkgconfig.GetEnvDuration("FEED_TIMEOUT", 12*time.Second),
		FeedItemLimit:      pkgconfig.GetEnvInt("FEED_ITEM_LIMIT", 10),
		ResolveParallelism: pkgconfig.GetEnvInt("RESOLVE_PARALLELISM", 5),
		TrendsFeedURL:      pkgconfig.GetEnvString("TRENDS_FEED_URL", trends.DefaultFeedURL),
		TrendsFallbackURL:  pkgconfig.GetEnvString("TRENDS_FALLBACK_URL", trends.DefaultFallbackLink),
		SourcesFile:        pkgconfig.GetEnvString("SOURCES_FILE", ""),
		Resolver:           resolver,

		RateLimitEnabled: pkgconfig.GetEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitRPS:     pkgconfig.GetEnvFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:   pkgconfig.GetEnvInt("RATE_LIMIT_BURST", 10),
		TrustProxy:       pkgconfig.GetEnvBool("TRUST_PROXY", false),

		CacheMaxAge: pkgconfig.GetEnvDuration("CACHE_MAX_AGE", 5*time.Minute),
		CacheStale:  pkgconfig.GetEnvDuration("CACHE_STALE", 5*time.Minute),
	}
}

// Validate checks the loaded values and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR is required"))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}
	if c.MaxRequestBody <= 0 {
		errs = append(errs, fmt.Errorf("MAX_REQUEST_BODY must be positive, got %d", c.MaxRequestBody))
	}
	if err := pkgconfig.ValidateDurationRange(c.FeedTimeout, time.Second, time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("FEED_TIMEOUT: %w", err))
	}
	if c.FeedItemLimit < 1 || c.FeedItemLimit > MaxFeedItemLimit {
		errs = append(errs, fmt.Errorf("FEED_ITEM_LIMIT must be between 1 and %d, got %d", MaxFeedItemLimit, c.FeedItemLimit))
	}
	if c.ResolveParallelism < 1 || c.ResolveParallelism > 50 {
		errs = append(errs, fmt.Errorf("RESOLVE_PARALLELISM must be between 1 and 50, got %d", c.ResolveParallelism))
	}
	if err := entity.ValidateURL(c.TrendsFeedURL); err != nil {
		errs = append(errs, fmt.Errorf("TRENDS_FEED_URL: %w", err))
	}
	if err := entity.ValidateURL(c.TrendsFallbackURL); err != nil {
		errs = append(errs, fmt.Errorf("TRENDS_FALLBACK_URL: %w", err))
	}
	if err := c.Resolver.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("resolver: %w", err))
	}
	if c.RateLimitEnabled {
		if c.RateLimitRPS <= 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS))
		}
		if c.RateLimitBurst < 1 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst))
		}
	}
	if c.CacheMaxAge < 0 || c.CacheStale < 0 {
		errs = append(errs, errors.New("CACHE_MAX_AGE and CACHE_STALE must not be negative"))
	}

	return errors.Join(errs...)
}

// AggregateBudget is the longest an aggregate can take: one feed fetch followed by
// ceil(FeedItemLimit/ResolveParallelism) sequential rounds of link resolution, plus slack
// for encoding and the write. The server's write deadline must not be shorter.
func (c *Config) AggregateBudget() time.Duration {
	parallelism := max(c.ResolveParallelism, 1)
	rounds := (c.FeedItemLimit + parallelism - 1) / parallelism
	return c.FeedTimeout + time.Duration(rounds)*c.Resolver.Timeout + aggregateSlack
}

const aggregateSlack = 10 * time.Second

// Sources returns the source registry: the YAML file named by SourcesFile when set,
// otherwise the built-in table.
func (c *Config) Sources() ([]entity.Source, error) {
	if c.SourcesFile == "" {
		sources := DefaultSources()
		if err := entity.ValidateSources(sources); err != nil {
			return nil, err
		}
		return sources, nil
	}
	return LoadSourcesFile(c.SourcesFile)
}
