package ingest

import (
	"context"
	"time"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/logx"
	"envio-courier-tracking/internal/repository"
)

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingStore
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingStore повторяет транзиентные ошибки записи в хранилище
type RetryingStore struct {
	drivers  driverStore
	timeline timelineStore
	logger   logx.Logger
	retries  counter
	cfg      RetryConfig
}

func NewRetryingStore(drivers driverStore, timeline timelineStore, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingStore {
	if drivers == nil && timeline == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingStore{drivers: drivers, timeline: timeline, logger: logger, retries: retries, cfg: cfg}
}

func (r *RetryingStore) UpsertLocation(ctx context.Context, loc domain.DriverLocation) error {
	return r.do(ctx, "UpsertLocation", func() error {
		return r.drivers.UpsertLocation(ctx, loc)
	})
}

func (r *RetryingStore) MarkOffline(ctx context.Context, driverID string) (bool, error) {
	var marked bool
	err := r.do(ctx, "MarkOffline", func() error {
		var err error
		marked, err = r.drivers.MarkOffline(ctx, driverID)
		return err
	})
	return marked, err
}

func (r *RetryingStore) Append(ctx context.Context, orderID string, upd domain.TimelineUpdate) error {
	return r.do(ctx, "Append", func() error {
		return r.timeline.Append(ctx, orderID, upd)
	})
}

func (r *RetryingStore) do(ctx context.Context, method string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !repository.IsTransient(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("ingest store retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
