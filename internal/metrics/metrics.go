package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewEventsAppliedTotal returns a counter for feed events merged into session state
func NewEventsAppliedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_events_applied_total",
		Help: "Total number of change-feed events merged into tracked state",
	})
}

// NewEventsStaleTotal returns a counter for events dropped by the monotonic timestamp check
func NewEventsStaleTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_events_stale_total",
		Help: "Total number of change-feed events dropped as stale or duplicate",
	})
}

// NewEventsMalformedTotal returns a counter for events dropped for missing an entity id
func NewEventsMalformedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_events_malformed_total",
		Help: "Total number of change-feed events dropped as malformed",
	})
}

// NewIngestRetriesTotal returns a counter for retried location writes
func NewIngestRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_retries_total",
		Help: "Total number of retry attempts performed by the location ingest",
	})
}

// NewRateLimitExceededTotal returns a counter for rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
