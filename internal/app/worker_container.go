package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"envio-courier-tracking/internal/config"
	"envio-courier-tracking/internal/ingest"
	"envio-courier-tracking/internal/logx"
	"envio-courier-tracking/internal/repository"
	"envio-courier-tracking/internal/transport/kafka"
)

// WorkerContainerBuilder builds the ingest-worker container.
type WorkerContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewWorkerContainerBuilder returns a new worker container builder.
func NewWorkerContainerBuilder() *WorkerContainerBuilder {
	return &WorkerContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *WorkerContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *WorkerContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *WorkerContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *WorkerContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the worker container.
func (b *WorkerContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *WorkerContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerIngest(container); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer builds and returns the worker container.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewWorkerContainerBuilder().MustBuild(ctx)
}

type ingestIn struct {
	dig.In

	Cfg     *config.Config
	Drivers *repository.DriverRepo
	Tl      *repository.TimelineRepo
	Logger  logx.Logger
	Retries prometheus.Counter `name:"ingest_retries_total"`
}

func registerIngest(container *dig.Container) error {
	return provideAll(container,
		provideMetrics,
		repository.NewDriverRepo,
		repository.NewTimelineRepo,
		func(in ingestIn) *ingest.RetryingStore {
			return ingest.NewRetryingStore(in.Drivers, in.Tl, in.Logger, in.Retries, ingest.RetryConfig{
				MaxAttempts: in.Cfg.IngestRetry.MaxAttempts,
				BaseDelay:   in.Cfg.IngestRetry.BaseDelay,
				MaxDelay:    in.Cfg.IngestRetry.MaxDelay,
			})
		},
		func(store *ingest.RetryingStore, logger logx.Logger) *ingest.Service {
			return ingest.NewService(store, store, logger)
		},
		func(cfg *config.Config, svc *ingest.Service, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(
				cfg.Kafka.Brokers,
				cfg.Kafka.GroupID+"-ingest",
				[]string{cfg.Kafka.LocationTopic},
				kafka.NewLocationHandler(svc),
				logger,
			)
		},
	)
}
