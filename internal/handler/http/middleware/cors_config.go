package middleware

import (
	"fmt"
	"net/url"
	"strings"

	"intl-news-desk/pkg/config"
)

// DefaultCORSConfig allows any origin to read the public GET endpoints.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Trace-Id"},
		MaxAge:         86400,
	}
}

// LoadCORSConfig builds a CORSConfig from environment variables.
//
// Environment Variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated origins, or "*" (default "*")
//   - CORS_MAX_AGE: preflight cache duration in seconds (default 86400)
func LoadCORSConfig() (CORSConfig, error) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = config.GetEnvStringList("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.MaxAge = config.GetEnvInt("CORS_MAX_AGE", cfg.MaxAge)

	if err := cfg.Validate(); err != nil {
		return CORSConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every origin is "*" or a bare http(s) origin.
func (c CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one origin must be configured")
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("CORS max age must be non-negative, got: %d", c.MaxAge)
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			if len(c.AllowedOrigins) > 1 {
				return fmt.Errorf("wildcard origin cannot be combined with explicit origins")
			}
			continue
		}
		u, err := url.Parse(o)
		if err != nil {
			return fmt.Errorf("invalid origin URL '%s': %w", o, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("origin must use http or https scheme: %s", o)
		}
		if u.Host == "" {
			return fmt.Errorf("origin must include a host: %s", o)
		}
		if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" || strings.HasSuffix(o, "/") {
			return fmt.Errorf("origin must not include path, query or trailing slash: %s", o)
		}
	}
	return nil
}
