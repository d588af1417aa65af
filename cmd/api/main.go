package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intl-news-desk/internal/config"
	"intl-news-desk/internal/domain/entity"
	"intl-news-desk/internal/infra/fetcher"
	"intl-news-desk/internal/infra/scraper"
	"intl-news-desk/internal/observability/logging"
	"intl-news-desk/internal/observability/tracing"
	newsUC "intl-news-desk/internal/usecase/news"
	trendsUC "intl-news-desk/internal/usecase/trends"

	hhttp "intl-news-desk/internal/handler/http"
	"intl-news-desk/internal/handler/http/middleware"
	hnews "intl-news-desk/internal/handler/http/news"
	"intl-news-desk/internal/handler/http/requestid"
	htrends "intl-news-desk/internal/handler/http/trends"
)

const serviceName = "intl-news-desk"

func main() {
	cfg := config.Load()
	logger := initLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	sources, err := cfg.Sources()
	if err != nil {
		logger.Error("failed to load sources", slog.Any("error", err), slog.String("file", cfg.SourcesFile))
		os.Exit(1)
	}

	tp := tracing.NewProvider(serviceName, cfg.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg, sources)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, cfg, components)
}

// initLogger initializes the process logger from LOG_LEVEL and LOG_FORMAT.
func initLogger(cfg config.Config) *slog.Logger {
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	return logger
}

// ServerComponents holds components needed for server operation.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *hhttp.RateLimiter
}

// setupServer builds the upstream clients and services, registers the routes and
// wraps them in the middleware chain.
func setupServer(logger *slog.Logger, cfg config.Config, sources []entity.Source) (*ServerComponents, error) {
	scraperCfg := scraper.DefaultConfig()
	scraperCfg.Timeout = cfg.FeedTimeout
	if err := scraperCfg.Validate(); err != nil {
		return nil, err
	}
	feedFetcher := scraper.NewRSSFetcher(&http.Client{}, scraperCfg)

	resolver, err := fetcher.NewLinkResolver(cfg.Resolver)
	if err != nil {
		return nil, err
	}

	newsSvc := newsUC.NewService(feedFetcher, resolver, sources, newsUC.Config{
		ItemLimit:          cfg.FeedItemLimit,
		ResolveParallelism: cfg.ResolveParallelism,
	})
	trendsSvc := trendsUC.NewService(feedFetcher, cfg.TrendsFeedURL, cfg.TrendsFallbackURL)

	var limiter *hhttp.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = hhttp.NewRateLimiter(hhttp.RateLimiterConfig{
			RPS:               cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
			TrustForwardedFor: cfg.TrustProxy,
		})
		logger.Info("rate limiting initialized",
			slog.Float64("rps", cfg.RateLimitRPS),
			slog.Int("burst", cfg.RateLimitBurst),
			slog.Bool("trust_proxy", cfg.TrustProxy))
	} else {
		logger.Warn("rate limiting is DISABLED - every aggregate call fans out to all upstream feeds")
	}

	mux := setupRoutes(logger, cfg, routeDeps{
		News:        newsSvc,
		Trends:      trendsSvc,
		SourceCount: len(sources),
		Breakers: map[string]hhttp.BreakerReporter{
			"feeds":    feedFetcher.Breakers(),
			"resolver": resolver.Breaker(),
		},
		RateLimiter: limiter,
	})

	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		return nil, err
	}
	corsConfig.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	logger.Info("sources loaded",
		slog.Int("count", len(sources)),
		slog.Int("left", len(config.FilterColumn(sources, entity.ColumnLeft))),
		slog.Int("middle", len(config.FilterColumn(sources, entity.ColumnMiddle))))

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg, mux, limiter, corsConfig),
		RateLimiter: limiter,
	}, nil
}

type routeDeps struct {
	News        hnews.Aggregator
	Trends      htrends.Snapshotter
	SourceCount int
	Breakers    map[string]hhttp.BreakerReporter
	RateLimiter *hhttp.RateLimiter
}

// setupRoutes registers the API and operational routes.
func setupRoutes(logger *slog.Logger, cfg config.Config, deps routeDeps) *http.ServeMux {
	mux := http.NewServeMux()

	hnews.Register(mux, deps.News, cfg.CacheMaxAge, cfg.CacheStale, logger)
	htrends.Register(mux, deps.Trends, cfg.CacheMaxAge, cfg.CacheStale, logger)

	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version:     cfg.Version,
		SourceCount: deps.SourceCount,
		Breakers:    deps.Breakers,
		RateLimiter: deps.RateLimiter,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{SourceCount: deps.SourceCount})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → Tracing → Rate Limit → Recovery → Logging → Body Limit → Metrics
// Tracing sits outside Logging so access log lines carry the trace id.
func applyMiddleware(logger *slog.Logger, cfg config.Config, handler http.Handler, limiter *hhttp.RateLimiter, corsConfig middleware.CORSConfig) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(cfg.MaxRequestBody)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	if limiter != nil {
		chain = limiter.Limit(chain)
	}
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(corsConfig)(chain)

	return chain
}

// newHTTPServer builds the server with its connection deadlines. The write deadline
// covers a full aggregate so slow upstreams degrade to empty blocks, not cut connections.
func newHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		WriteTimeout:      cfg.AggregateBudget(),
		IdleTimeout:       60 * time.Second,
	}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg config.Config, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := newHTTPServer(cfg, components.Handler)
	srv.BaseContext = func(_ net.Listener) context.Context {
		return ctx
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// In-flight aggregations hold outbound requests on the base context.
	cancel()
	logger.Info("server stopped")
}
