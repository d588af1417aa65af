package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins. A single "*" allows any origin.
	AllowedOrigins []string

	// AllowedMethods lists the methods announced in preflight responses.
	AllowedMethods []string

	// AllowedHeaders lists the request headers announced in preflight responses.
	AllowedHeaders []string

	// ExposedHeaders lists response headers browsers may read.
	ExposedHeaders []string

	// MaxAge specifies how long preflight results can be cached (in seconds).
	MaxAge int

	// Logger receives rejected-origin warnings. Nil disables logging.
	Logger *slog.Logger
}

// IsAllowed reports whether origin is permitted.
func (c CORSConfig) IsAllowed(origin string) bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func (c CORSConfig) wildcard() bool {
	return len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*"
}

// CORS returns an HTTP middleware that handles CORS for cross-origin requests.
//
// Behavior:
//   - If Origin header is empty, skip CORS processing (same-origin request)
//   - If Origin is not allowed, log and continue without CORS headers
//   - Preflight (OPTIONS) requests from allowed origins get 204 and never reach next
//   - Actual requests from allowed origins get Allow-Origin and Expose-Headers set
//
// The API carries no credentials, so Allow-Credentials is never sent and a wildcard
// configuration answers with a literal "*".
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if config.wildcard() {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				h.Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if len(config.ExposedHeaders) > 0 {
				h.Set("Access-Control-Expose-Headers", strings.Join(config.ExposedHeaders, ", "))
			}
			next.ServeHTTP(w, r)
		})
	}
}
