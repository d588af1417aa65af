// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	import "intl-news-desk/internal/observability/logging"
//
//	func main() {
//	    logger := logging.New(logging.Options{Level: os.Getenv("LOG_LEVEL")})
//	    slog.SetDefault(logger)
//	}
//
//	func handle(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("aggregating sources")
//	}
package logging
