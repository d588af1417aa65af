package scraper

import (
	"fmt"
	"time"

	"intl-news-desk/internal/resilience/circuitbreaker"
)

// Default request policy for feed hosts.
const (
	DefaultUserAgent   = "IntlNewsDeskBot/1.0"
	DefaultAccept      = "application/rss+xml, application/xml;q=0.9, */*;q=0.8"
	DefaultTimeout     = 12 * time.Second
	DefaultMaxBodySize = 5 * 1024 * 1024
)

// Config controls how RSSFetcher talks to feed hosts.
type Config struct {
	// Timeout bounds one fetch including reading the body.
	Timeout time.Duration
	// UserAgent is sent on every request. Some publishers reject empty or default agents.
	UserAgent string
	// Accept is the content negotiation header sent on every request.
	Accept string
	// MaxBodySize caps how much of a response body is read.
	MaxBodySize int64
	// Breaker is the template for the per-feed circuit breakers.
	Breaker circuitbreaker.Config
}

// DefaultConfig returns the production request policy.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Accept:      DefaultAccept,
		MaxBodySize: DefaultMaxBodySize,
		Breaker:     circuitbreaker.FeedFetchConfig(),
	}
}

// Validate rejects configurations that would make every fetch fail.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent is required")
	}
	if c.Breaker.Name == "" {
		return fmt.Errorf("breaker name is required")
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	return nil
}
