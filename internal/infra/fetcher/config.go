package fetcher

import (
	"fmt"
	"regexp"
	"time"

	"intl-news-desk/pkg/config"
)

// DefaultHostPattern matches Google News redirect links.
const DefaultHostPattern = `(?i)^https?://news\.google\.com/`

// ResolverConfig holds the configuration for link resolution.
//
// Security settings:
//   - MaxRedirects: Prevents infinite redirect loops
//   - DenyPrivateIPs: Refuses redirects to literal private/loopback addresses
//   - MaxBodySize: Bounds how much of an interstitial page is parsed
type ResolverConfig struct {
	// HostPattern selects which links are resolved. Links that do not match are
	// returned unchanged without a network call.
	HostPattern string

	// Timeout bounds one resolution including all redirects.
	// Default: 12s
	Timeout time.Duration

	// MaxRedirects is the maximum number of redirects followed.
	// Default: 10
	MaxRedirects int

	// HTMLFallback enables parsing the interstitial page when redirects end on
	// the redirect host itself.
	// Default: true
	HTMLFallback bool

	// MaxBodySize is the maximum number of bytes read from an interstitial page.
	// Default: 512KB
	MaxBodySize int64

	// DenyPrivateIPs rejects redirect targets that are literal private IPs.
	// Default: true
	DenyPrivateIPs bool

	// UserAgent is sent on every request.
	UserAgent string
}

// DefaultConfig returns the default configuration for link resolution.
func DefaultConfig() ResolverConfig {
	return ResolverConfig{
		HostPattern:    DefaultHostPattern,
		Timeout:        12 * time.Second,
		MaxRedirects:   10,
		HTMLFallback:   true,
		MaxBodySize:    512 * 1024,
		DenyPrivateIPs: true,
		UserAgent:      "IntlNewsDeskBot/1.0",
	}
}

// Validate checks if the configuration values are valid.
//
// Validation rules:
//   - HostPattern: must compile
//   - Timeout: 1s-60s
//   - MaxRedirects: 1-20
//   - MaxBodySize: 1KB-10MB
func (c *ResolverConfig) Validate() error {
	if _, err := regexp.Compile(c.HostPattern); err != nil {
		return fmt.Errorf("host pattern %q does not compile: %w", c.HostPattern, err)
	}
	if err := config.ValidateDurationRange(c.Timeout, time.Second, 60*time.Second); err != nil {
		return fmt.Errorf("resolve timeout: %w", err)
	}
	if c.MaxRedirects < 1 || c.MaxRedirects > 20 {
		return fmt.Errorf("max redirects must be between 1 and 20, got %d", c.MaxRedirects)
	}
	if c.MaxBodySize < 1024 || c.MaxBodySize > 10*1024*1024 {
		return fmt.Errorf("max body size must be between 1KB and 10MB, got %d", c.MaxBodySize)
	}
	return nil
}

// LoadConfigFromEnv loads the resolver configuration from environment variables.
// Unset or invalid variables keep their defaults.
//
// Environment variables:
//   - RESOLVE_HOST_PATTERN: regexp for links to resolve
//   - RESOLVE_TIMEOUT: per-resolution timeout (e.g. "12s")
//   - RESOLVE_MAX_REDIRECTS: redirect cap
//   - RESOLVE_HTML_FALLBACK: "true"/"false"
//   - RESOLVE_MAX_BODY_SIZE: interstitial page byte limit
//   - RESOLVE_DENY_PRIVATE_IPS: "true"/"false"
func LoadConfigFromEnv() ResolverConfig {
	cfg := DefaultConfig()
	cfg.HostPattern = config.GetEnvString("RESOLVE_HOST_PATTERN", cfg.HostPattern)
	cfg.Timeout = config.GetEnvDuration("RESOLVE_TIMEOUT", cfg.Timeout)
	cfg.MaxRedirects = config.GetEnvInt("RESOLVE_MAX_REDIRECTS", cfg.MaxRedirects)
	cfg.HTMLFallback = config.GetEnvBool("RESOLVE_HTML_FALLBACK", cfg.HTMLFallback)
	cfg.MaxBodySize = int64(config.GetEnvInt("RESOLVE_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.DenyPrivateIPs = config.GetEnvBool("RESOLVE_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)
	return cfg
}
