package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/logx"
)

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

func retryCfg() RetryConfig {
	return RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
}

func TestRetryingStoreRetriesTransient(t *testing.T) {
	transient := &pgconn.PgError{Code: "40001"}
	calls := 0
	drivers := &mockDriverStore{
		upsertFn: func(context.Context, domain.DriverLocation) error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		},
	}
	retries := &countingCounter{}
	store := NewRetryingStore(drivers, nil, logx.Nop(), retries, retryCfg())

	err := store.UpsertLocation(context.Background(), validLocation())
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, 2, retries.n)
}

func TestRetryingStoreGivesUpAfterMaxAttempts(t *testing.T) {
	transient := &pgconn.PgError{Code: "40P01"}
	calls := 0
	drivers := &mockDriverStore{
		upsertFn: func(context.Context, domain.DriverLocation) error {
			calls++
			return transient
		},
	}
	store := NewRetryingStore(drivers, nil, logx.Nop(), nil, retryCfg())

	err := store.UpsertLocation(context.Background(), validLocation())
	require.Error(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryingStoreDoesNotRetryPermanent(t *testing.T) {
	boom := errors.New("constraint violated")
	calls := 0
	timeline := &mockTimelineStore{
		appendFn: func(context.Context, string, domain.TimelineUpdate) error {
			calls++
			return boom
		},
	}
	store := NewRetryingStore(nil, timeline, logx.Nop(), nil, retryCfg())

	err := store.Append(context.Background(), "o1", domain.TimelineUpdate{Status: domain.ShipmentInTransit})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestRetryingStoreStopsOnCancelledContext(t *testing.T) {
	transient := &pgconn.PgError{Code: "40001"}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	drivers := &mockDriverStore{
		offlineFn: func(context.Context, string) (bool, error) {
			calls++
			cancel()
			return false, transient
		},
	}
	store := NewRetryingStore(drivers, nil, logx.Nop(), nil, retryCfg())

	_, err := store.MarkOffline(ctx, "d1")
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestBackoffCap(t *testing.T) {
	require.Equal(t, time.Millisecond, backoff(time.Millisecond, 4*time.Millisecond, 1))
	require.Equal(t, 2*time.Millisecond, backoff(time.Millisecond, 4*time.Millisecond, 2))
	require.Equal(t, 4*time.Millisecond, backoff(time.Millisecond, 4*time.Millisecond, 3))
	require.Equal(t, 4*time.Millisecond, backoff(time.Millisecond, 4*time.Millisecond, 4))
}
