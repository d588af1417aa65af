package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"intl-news-desk/internal/infra/fetcher"
	"intl-news-desk/internal/usecase/trends"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 12*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 10, cfg.FeedItemLimit)
	assert.Equal(t, 5, cfg.ResolveParallelism)
	assert.Equal(t, trends.DefaultFeedURL, cfg.TrendsFeedURL)
	assert.Equal(t, trends.DefaultFallbackLink, cfg.TrendsFallbackURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheMaxAge)
	assert.Equal(t, fetcher.DefaultHostPattern, cfg.Resolver.HostPattern)
	assert.True(t, cfg.RateLimitEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("FEED_ITEM_LIMIT", "8")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RESOLVE_TIMEOUT", "3s")
	t.Setenv("CACHE_MAX_AGE", "1m")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 8, cfg.FeedItemLimit)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, 3*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, time.Minute, cfg.CacheMaxAge)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValueFallsBack(t *testing.T) {
	t.Setenv("FEED_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 12*time.Second, cfg.FeedTimeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty addr", mutate: func(c *Config) { c.Addr = "" }, wantErr: "HTTP_ADDR"},
		{name: "feed timeout too long", mutate: func(c *Config) { c.FeedTimeout = 2 * time.Minute }, wantErr: "FEED_TIMEOUT"},
		{name: "item limit zero", mutate: func(c *Config) { c.FeedItemLimit = 0 }, wantErr: "FEED_ITEM_LIMIT"},
		{name: "item limit above block size", mutate: func(c *Config) { c.FeedItemLimit = 11 }, wantErr: "between 1 and 10"},
		{name: "parallelism zero", mutate: func(c *Config) { c.ResolveParallelism = 0 }, wantErr: "RESOLVE_PARALLELISM"},
		{name: "trends url", mutate: func(c *Config) { c.TrendsFeedURL = "ftp://x" }, wantErr: "TRENDS_FEED_URL"},
		{name: "resolver pattern", mutate: func(c *Config) { c.Resolver.HostPattern = "(" }, wantErr: "resolver"},
		{name: "rate", mutate: func(c *Config) { c.RateLimitRPS = 0 }, wantErr: "RATE_LIMIT_RPS"},
		{name: "negative cache", mutate: func(c *Config) { c.CacheStale = -time.Second }, wantErr: "CACHE_STALE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_AggregateBudget(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		parallelism int
		want        time.Duration
	}{
		// 12s feed + 2 rounds of 12s resolution + 10s slack
		{name: "defaults", limit: 10, parallelism: 5, want: 46 * time.Second},
		{name: "single round", limit: 5, parallelism: 5, want: 34 * time.Second},
		{name: "partial round counts", limit: 10, parallelism: 3, want: 70 * time.Second},
		{name: "serial resolution", limit: 10, parallelism: 1, want: 142 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			cfg.FeedTimeout = 12 * time.Second
			cfg.Resolver.Timeout = 12 * time.Second
			cfg.FeedItemLimit = tt.limit
			cfg.ResolveParallelism = tt.parallelism

			got := cfg.AggregateBudget()
			assert.Equal(t, tt.want, got)

			rounds := (tt.limit + tt.parallelism - 1) / tt.parallelism
			worst := cfg.FeedTimeout + time.Duration(rounds)*cfg.Resolver.Timeout
			assert.Greater(t, got, worst, "budget must cover the slowest feed and every resolution round")
		})
	}
}

func TestConfig_ValidateReportsAllProblems(t *testing.T) {
	cfg := Load()
	cfg.Addr = ""
	cfg.FeedItemLimit = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_ADDR")
	assert.Contains(t, err.Error(), "FEED_ITEM_LIMIT")
}

func TestConfig_Sources(t *testing.T) {
	cfg := Load()
	sources, err := cfg.Sources()
	require.NoError(t, err)
	assert.Len(t, sources, 11)

	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registryYAML), 0o600))
	cfg.SourcesFile = path

	sources, err = cfg.Sources()
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}
