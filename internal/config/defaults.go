package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "tracking_db",
}

var defaultKafka = Kafka{
	GroupID:       "tracking-service",
	CDCTopic:      "tracking.cdc",
	LocationTopic: "tracking.driver-locations",
}

var defaultCache = Cache{
	TTL: 5 * time.Minute,
}

var defaultRateLimit = RateLimit{
	Enabled: true,
	Limit:   60,
	Window:  time.Minute,
}

var defaultPprof = Pprof{
	Addr: "127.0.0.1:6060",
}

var defaultIngestRetry = IngestRetry{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default Kafka settings. Brokers stay empty so a
// bare checkout runs without a broker.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultCache returns the default snapshot cache settings.
func DefaultCache() Cache {
	return defaultCache
}

// DefaultRateLimit returns the default tracking API limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultIngestRetry returns the default ingest retry settings.
func DefaultIngestRetry() IngestRetry {
	return defaultIngestRetry
}

// DefaultPprof returns the default pprof settings (disabled, loopback addr).
func DefaultPprof() Pprof {
	return defaultPprof
}
