package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores row-store connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores broker and topic settings. Empty brokers disable consuming.
type Kafka struct {
	Brokers       []string
	GroupID       string
	CDCTopic      string
	LocationTopic string
}

// Cache stores snapshot cache settings.
type Cache struct {
	TTL time.Duration
}

// RateLimit stores per-IP limiter settings for the tracking API.
type RateLimit struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// IngestRetry stores write retry settings for the ingest worker.
type IngestRetry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Pprof stores debug endpoint settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Config stores all service settings.
type Config struct {
	Port        int
	DB          DB
	Kafka       Kafka
	Cache       Cache
	RateLimit   RateLimit
	IngestRetry IngestRetry
	Pprof       Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:        DefaultPort(),
		DB:          DefaultDB(),
		Kafka:       DefaultKafka(),
		Cache:       DefaultCache(),
		RateLimit:   DefaultRateLimit(),
		IngestRetry: DefaultIngestRetry(),
		Pprof:       DefaultPprof(),
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}

	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid postgres port: %q", v)
		}
		cfg.DB.Port = v
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.DB.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.DB.Pass = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.DB.Name = v
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("KAFKA_GROUP_ID"); v != "" {
		cfg.Kafka.GroupID = v
	}
	if v := os.Getenv("KAFKA_CDC_TOPIC"); v != "" {
		cfg.Kafka.CDCTopic = v
	}
	if v := os.Getenv("KAFKA_LOCATION_TOPIC"); v != "" {
		cfg.Kafka.LocationTopic = v
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid cache ttl: %q", v)
		}
		cfg.Cache.TTL = d
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit flag: %q", v)
		}
		cfg.RateLimit.Enabled = b
	}
	if v := os.Getenv("RATE_LIMIT_PER_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid rate limit: %q", v)
		}
		cfg.RateLimit.Limit = n
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid rate limit window: %q", v)
		}
		cfg.RateLimit.Window = d
	}

	if v := os.Getenv("PPROF_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid pprof flag: %q", v)
		}
		cfg.Pprof.Enabled = b
	}
	if v := os.Getenv("PPROF_ADDR"); v != "" {
		cfg.Pprof.Addr = v
	}
	cfg.Pprof.User = os.Getenv("PPROF_USER")
	cfg.Pprof.Pass = os.Getenv("PPROF_PASS")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
