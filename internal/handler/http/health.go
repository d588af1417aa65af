// Package http provides HTTP handlers and middleware for the news desk API.
// It includes health check endpoints, metrics collection, request logging,
// panic recovery and per-client rate limiting.
package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"intl-news-desk/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerReporter exposes circuit breaker state for the health report.
type BreakerReporter interface {
	States() map[string]string
	OpenNames() []string
}

// HealthHandler reports the registry size, circuit breaker state and limiter load.
// Open breakers degrade the report but keep it at 200: the service still answers,
// it just serves fewer items for the affected hosts.
type HealthHandler struct {
	Version     string
	SourceCount int
	Breakers    map[string]BreakerReporter
	RateLimiter *RateLimiter
}

// ServeHTTP returns 200 when healthy or degraded and 503 when no sources are configured.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	status := "healthy"
	code := http.StatusOK

	if h.SourceCount > 0 {
		checks["sources"] = CheckStatus{Status: "healthy", Details: map[string]any{"count": h.SourceCount}}
	} else {
		checks["sources"] = CheckStatus{Status: "unhealthy", Message: "no sources configured"}
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	for name, b := range h.Breakers {
		open := b.OpenNames()
		check := CheckStatus{Status: "healthy", Details: map[string]any{"circuits": b.States()}}
		if len(open) > 0 {
			check.Status = "degraded"
			check.Message = "open circuits: " + strings.Join(open, ", ")
			if status == "healthy" {
				status = "degraded"
			}
		}
		checks["circuit_breaker_"+name] = check
	}

	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"active_clients": h.RateLimiter.ActiveClients()},
		}
	}

	respond.NoStore(w)
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// ReadyHandler handles readiness probe requests.
// The service is ready once its source registry is loaded.
type ReadyHandler struct {
	SourceCount int
}

// ServeHTTP returns 200 OK if ready, or 503 Service Unavailable otherwise.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.SourceCount == 0 {
		http.Error(w, "no sources configured", http.StatusServiceUnavailable)
		return
	}
	writePlain(w, "ready")
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writePlain(w, "alive")
}

func writePlain(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Warn("failed to write probe response", slog.Any("error", err))
	}
}
