package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"envio-courier-tracking/internal/cache"
	"envio-courier-tracking/internal/config"
	"envio-courier-tracking/internal/feed"
	"envio-courier-tracking/internal/http/handlers"
	"envio-courier-tracking/internal/http/pprofserver"
	"envio-courier-tracking/internal/http/router"
	"envio-courier-tracking/internal/ingest"
	"envio-courier-tracking/internal/logx"
	"envio-courier-tracking/internal/repository"
	"envio-courier-tracking/internal/tracking"
	"envio-courier-tracking/internal/transport/kafka"
	"envio-courier-tracking/internal/ws"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the tracking-service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}
	if err := registerFeed(container); err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the tracking-service container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type reconcilerIn struct {
	dig.In

	Logger    logx.Logger
	Applied   prometheus.Counter `name:"events_applied_total"`
	Stale     prometheus.Counter `name:"events_stale_total"`
	Malformed prometheus.Counter `name:"events_malformed_total"`
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		provideMetrics,
		repository.NewDriverRepo,
		repository.NewShipmentRepo,
		repository.NewTimelineRepo,
		func(cfg *config.Config) *cache.TTLCache {
			return cache.New(cfg.Cache.TTL, nil)
		},
		func(d *repository.DriverRepo, s *repository.ShipmentRepo, tl *repository.TimelineRepo) *tracking.Loader {
			return tracking.NewLoader(d, s, tl)
		},
		tracking.NewCachedLoader,
		func(in reconcilerIn) *tracking.Reconciler {
			return tracking.NewReconciler(in.Logger, in.Applied, in.Stale, in.Malformed)
		},
		func(d *repository.DriverRepo, tl *repository.TimelineRepo, logger logx.Logger) *ingest.Service {
			return ingest.NewService(d, tl, logger)
		},
	)
}

func registerFeed(container *dig.Container) error {
	return provideAll(container,
		feed.NewDispatcher,
		func(loader *tracking.Loader, d *feed.Dispatcher, rec *tracking.Reconciler, logger logx.Logger) *tracking.SessionFactory {
			return tracking.NewSessionFactory(loader, d, rec, logger)
		},
		func(cfg *config.Config, d *feed.Dispatcher, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(
				cfg.Kafka.Brokers,
				cfg.Kafka.GroupID,
				[]string{cfg.Kafka.CDCTopic},
				kafka.NewChangeHandler(d),
				logger,
			)
		},
	)
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config) pprofOut {
		if !cfg.Pprof.Enabled {
			return pprofOut{}
		}
		return pprofOut{Server: &http.Server{
			Addr:              cfg.Pprof.Addr,
			Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
			ReadHeaderTimeout: 5 * time.Second,
		}}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewTrackingUsecase,
		handlers.NewTimelineWriter,
		handlers.NewTrackingHandler,
		handlers.NewSessionFactory,
		ws.NewHub,
		handlers.NewWSHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
		pprofProvider,
	)
}
