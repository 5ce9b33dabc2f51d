package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"envio-courier-tracking/internal/metrics"
)

type metricsOut struct {
	dig.Out

	EventsAppliedTotal     prometheus.Counter `name:"events_applied_total"`
	EventsStaleTotal       prometheus.Counter `name:"events_stale_total"`
	EventsMalformedTotal   prometheus.Counter `name:"events_malformed_total"`
	IngestRetriesTotal     prometheus.Counter `name:"ingest_retries_total"`
	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
}

// provideMetrics registers the service counters, reusing collectors that are
// already registered so repeated container builds in tests do not collide.
func provideMetrics() (metricsOut, error) {
	applied, err := registerOrExisting(metrics.NewEventsAppliedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	stale, err := registerOrExisting(metrics.NewEventsStaleTotal())
	if err != nil {
		return metricsOut{}, err
	}
	malformed, err := registerOrExisting(metrics.NewEventsMalformedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	retries, err := registerOrExisting(metrics.NewIngestRetriesTotal())
	if err != nil {
		return metricsOut{}, err
	}
	rateLimited, err := registerOrExisting(metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		EventsAppliedTotal:     applied,
		EventsStaleTotal:       stale,
		EventsMalformedTotal:   malformed,
		IngestRetriesTotal:     retries,
		RateLimitExceededTotal: rateLimited,
	}, nil
}

func registerOrExisting(c prometheus.Counter) (prometheus.Counter, error) {
	err := prometheus.DefaultRegisterer.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("register counter: %w", err)
}
