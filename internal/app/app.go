package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/volleyball-feed/external/vbdb"
	"github.com/riskibarqy/volleyball-feed/internal/config"
	"github.com/riskibarqy/volleyball-feed/internal/infrastructure/feedcache"
	"github.com/riskibarqy/volleyball-feed/internal/interfaces/httpapi"
	"github.com/riskibarqy/volleyball-feed/internal/observability"
	"github.com/riskibarqy/volleyball-feed/internal/platform/cache"
	"github.com/riskibarqy/volleyball-feed/internal/platform/logging"
	"github.com/riskibarqy/volleyball-feed/internal/platform/resilience"
	"github.com/riskibarqy/volleyball-feed/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App is the assembled service: the HTTP server plus the optional background warmup.
type App struct {
	Server *http.Server
	Warmup *usecase.WarmupService

	cfg       config.Config
	logger    *logging.Logger
	snapshots *feedcache.RedisSnapshotStore
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	clientCfg := vbdb.ClientConfig{
		HTTPClient: &http.Client{
			Timeout: cfg.VBDBTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(formatUpstreamSpanName),
			),
		},
		BaseURL:      cfg.VBDBBaseURL,
		Timeout:      cfg.VBDBTimeout,
		MaxRetries:   cfg.VBDBMaxRetries,
		RetryBackoff: cfg.VBDBRetryBackoff,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.VBDBCircuitEnabled,
			FailureThreshold: cfg.VBDBCircuitFailureCount,
			OpenTimeout:      cfg.VBDBCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.VBDBCircuitHalfOpenMaxReq,
		},
	}
	if metrics != nil {
		clientCfg.Observer = metrics
	}
	client := vbdb.NewClient(clientCfg)

	storeTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		storeTTL = -1
	}
	store := cache.NewStore(storeTTL, cache.WithLoadTimeout(upstreamLoadBudget(cfg)))

	opts := make([]usecase.FeedServiceOption, 0, 2)
	if metrics != nil {
		opts = append(opts, usecase.WithFeedMetrics(metrics))
		if err := metrics.RegisterCacheStats(store.Stats); err != nil {
			return nil, fmt.Errorf("register cache metrics: %w", err)
		}
	}

	var snapshots *feedcache.RedisSnapshotStore
	if cfg.RedisURL != "" {
		var err error
		snapshots, err = feedcache.New(feedcache.Config{
			URL:       cfg.RedisURL,
			KeyPrefix: cfg.RedisKeyPrefix,
			TTL:       cfg.CacheTTL,
			Timeout:   cfg.RedisTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build redis snapshot store: %w", err)
		}
		opts = append(opts, usecase.WithSnapshotStore(snapshots))
	}

	feeds := usecase.NewFeedService(client, store, logger.Named("feeds"), opts...)
	seoSvc := usecase.NewSEOService(feeds)

	routerCfg := httpapi.RouterConfig{CORSAllowedOrigins: cfg.CORSAllowedOrigins}
	if metrics != nil {
		routerCfg.MetricsHandler = metrics.Handler()
		routerCfg.Observer = metrics
	}
	router := httpapi.NewRouter(httpapi.NewHandler(feeds, seoSvc, logger), logger, routerCfg)

	a := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:       cfg,
		logger:    logger,
		snapshots: snapshots,
	}
	if cfg.WarmupEnabled {
		a.Warmup = usecase.NewWarmupService(feeds, cfg.WarmupDivisions, cfg.WarmupWorkers, logger.Named("warmup"))
	}

	return a, nil
}

// CheckDependencies pings optional backing services. The upstream API is not probed.
func (a *App) CheckDependencies(ctx context.Context) error {
	if a.snapshots == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.RedisTimeout)
	defer cancel()
	return a.snapshots.Ping(ctx)
}

// StartWarmup runs the warmup loop until ctx is cancelled. It is a no-op when warmup is disabled.
func (a *App) StartWarmup(ctx context.Context) {
	if a.Warmup == nil {
		a.logger.Info("feed warmup disabled", "reason", "WARMUP_ENABLED=false")
		return
	}
	go a.Warmup.Run(ctx, a.cfg.WarmupInterval)
}

func (a *App) Close() error {
	if a.snapshots == nil {
		return nil
	}
	return a.snapshots.Close()
}

// upstreamLoadBudget covers every attempt the vbdb client makes plus its linear backoff.
func upstreamLoadBudget(cfg config.Config) time.Duration {
	attempts := time.Duration(cfg.VBDBMaxRetries + 1)
	retries := time.Duration(cfg.VBDBMaxRetries)
	return attempts*cfg.VBDBTimeout + retries*(retries+1)/2*cfg.VBDBRetryBackoff
}
