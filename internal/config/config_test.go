package config_test

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"envio-courier-tracking/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER",
		"POSTGRES_PASSWORD", "POSTGRES_DB", "KAFKA_BROKERS", "KAFKA_GROUP_ID",
		"KAFKA_CDC_TOPIC", "KAFKA_LOCATION_TOPIC", "CACHE_TTL",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_PER_WINDOW", "RATE_LIMIT_WINDOW",
		"PPROF_USER", "PPROF_PASS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "127.0.0.1", cfg.DB.Host)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Empty(t, cfg.Kafka.Brokers)
	require.Equal(t, "tracking-service", cfg.Kafka.GroupID)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "15432")
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "tracking")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("KAFKA_CDC_TOPIC", "cdc.rows")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_PER_WINDOW", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "10s")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "db", cfg.DB.Host)
	require.Equal(t, "postgres://u:p@db:15432/tracking?sslmode=disable", cfg.DB.DSN())
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "cdc.rows", cfg.Kafka.CDCTopic)
	require.Equal(t, 30*time.Second, cfg.Cache.TTL)
	require.Equal(t, 5, cfg.RateLimit.Limit)
	require.Equal(t, 10*time.Second, cfg.RateLimit.Window)
}

func TestLoad_InvalidPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "70000")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidPostgresPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("POSTGRES_PORT", "not-a-number")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("CACHE_TTL", "soon")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("RATE_LIMIT_PER_WINDOW", "-3")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_FlagsParseError(t *testing.T) {
	clearEnv(t)

	oldArgs := os.Args
	oldCommandLine := pflag.CommandLine
	defer func() {
		os.Args = oldArgs
		pflag.CommandLine = oldCommandLine
	}()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pflag.CommandLine = fs
	os.Args = []string{"cmd", "--port=not-a-number"}

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	require.Contains(t, err.Error(), "parse flags")
}
