// Package fetch defines the ports between the news use cases and the network:
// feed fetching, link resolution and the errors they report.
package fetch

import (
	"context"
	"errors"
)

// Sentinel errors for fetch operations.
var (
	// ErrFeedFetchFailed indicates that the feed could not be retrieved.
	// This covers DNS, connection and timeout failures.
	ErrFeedFetchFailed = errors.New("failed to fetch feed from source")

	// ErrInvalidFeedFormat indicates that the feed content could not be parsed.
	// This typically happens when the body is not valid RSS or Atom.
	ErrInvalidFeedFormat = errors.New("invalid feed format")

	// ErrUnexpectedStatus indicates a non-2xx response from the feed host.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrBodyTooLarge indicates the feed body exceeded the configured size limit.
	ErrBodyTooLarge = errors.New("feed body too large")

	// ErrCircuitOpen indicates the host's circuit breaker refused the call.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// Error type labels used for metrics.
const (
	ErrorTypeTimeout     = "timeout"
	ErrorTypeCanceled    = "canceled"
	ErrorTypeStatus      = "status"
	ErrorTypeParse       = "parse"
	ErrorTypeTooLarge    = "too_large"
	ErrorTypeCircuitOpen = "circuit_open"
	ErrorTypeNetwork     = "network"
)

// ClassifyError maps a fetch error onto a bounded metrics label.
func ClassifyError(err error) string {
	switch {
	case errors.Is(err, ErrCircuitOpen):
		return ErrorTypeCircuitOpen
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	case errors.Is(err, context.Canceled):
		return ErrorTypeCanceled
	case errors.Is(err, ErrUnexpectedStatus):
		return ErrorTypeStatus
	case errors.Is(err, ErrInvalidFeedFormat):
		return ErrorTypeParse
	case errors.Is(err, ErrBodyTooLarge):
		return ErrorTypeTooLarge
	default:
		return ErrorTypeNetwork
	}
}
