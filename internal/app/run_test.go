package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	testlog "envio-courier-tracking/internal/testutil"
)

func TestWorkerRunner_MustRun_CanceledIsClean(t *testing.T) {
	r := &WorkerRunner{runFn: func(*dig.Container) error {
		return context.Canceled
	}}
	require.NotPanics(t, func() { r.MustRun(dig.New()) })
}

func TestWorkerRunner_MustRun_PanicsOnError(t *testing.T) {
	r := &WorkerRunner{runFn: func(*dig.Container) error {
		return errors.New("boom")
	}}
	require.Panics(t, func() { r.MustRun(dig.New()) })
}

func TestStartConsumer_NilConsumerLogsAndReturns(t *testing.T) {
	rec := testlog.New()
	startConsumer(context.Background(), nil, rec.Logger())
	require.True(t, rec.Has("change feed consumer disabled, no brokers configured"))
}

func TestConnectDbWithRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	old := newPool
	t.Cleanup(func() { newPool = old })
	calls := 0
	newPool = func(context.Context, string) (*pgxpool.Pool, error) {
		calls++
		return nil, errors.New("refused")
	}

	_, err := connectDbWithRetry(ctx, "postgres://u:p@127.0.0.1:1/x", 3, time.Second)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}
