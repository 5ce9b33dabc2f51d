package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"envio-courier-tracking/internal/logx"
	"envio-courier-tracking/internal/transport/kafka"
	"envio-courier-tracking/internal/ws"
)

// MustRun starts the tracking service using the provided DI container.
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Server   *http.Server
	Pprof    *http.Server `name:"pprof_server" optional:"true"`
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Hub      *ws.Hub
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, "tracking-service", in.Logger)
		if in.Pprof != nil {
			startServer(in.Pprof, "pprof", in.Logger)
		}
		startConsumer(in.Ctx, in.Consumer, in.Logger)

		waitForShutdown(in.Ctx, in.Logger)

		in.Hub.Broadcast([]byte(`{"type":"shutdown"}`))
		in.Hub.Close()
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in, in.Logger)
		return nil
	})
}

func startServer(server *http.Server, name string, logger logx.Logger) {
	go func() {
		logger.Info(name+" listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("%s listen error: %v", name, err)
		}
	}()
}

func startConsumer(ctx context.Context, consumer *kafka.Consumer, logger logx.Logger) {
	if consumer == nil {
		logger.Info("change feed consumer disabled, no brokers configured")
		return
	}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("change feed consumer stopped", logx.Any("err", err))
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down tracking-service")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(in runIn, logger logx.Logger) {
	if in.Consumer != nil {
		if err := in.Consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Any("err", err))
		}
	}
	if err := in.Server.Close(); err != nil {
		logger.Error("server close error", logx.Any("err", err))
	}
	if in.Pprof != nil {
		if err := in.Pprof.Close(); err != nil {
			logger.Error("pprof close error", logx.Any("err", err))
		}
	}
	in.Pool.Close()
}
