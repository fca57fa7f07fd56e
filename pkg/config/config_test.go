package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ehealth-bench/datagen/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, 1000, cfg.Generator.NumDocuments)
	require.Equal(t, 5, cfg.Generator.SinglesPerTier)
	require.Equal(t, 10, cfg.Generator.PairQueries)
	require.Equal(t, "./data", cfg.Output.Dir)
	require.True(t, cfg.Output.WriteDocFiles)
	require.False(t, cfg.Postgres.Enabled)
	require.False(t, cfg.Redis.Enabled)
	require.False(t, cfg.Kafka.Enabled)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
generator:
  numDocuments: 250
  seed: 7
output:
  dir: /tmp/out
postgres:
  enabled: true
  host: db.internal
  connMaxLifetime: 2m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, 250, cfg.Generator.NumDocuments)
	require.Equal(t, int64(7), cfg.Generator.Seed)
	require.Equal(t, "/tmp/out", cfg.Output.Dir)
	require.True(t, cfg.Postgres.Enabled)
	require.Equal(t, "db.internal", cfg.Postgres.Host)
	require.Equal(t, 2*time.Minute, cfg.Postgres.ConnMaxLifetime)
	// Untouched sections keep their defaults.
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("EH_NUM_DOCUMENTS", "77")
	t.Setenv("EH_SEED", "123")
	t.Setenv("EH_OUTPUT_DIR", "/tmp/env-out")
	t.Setenv("EH_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("EH_LOGGING_LEVEL", "debug")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, 77, cfg.Generator.NumDocuments)
	require.Equal(t, int64(123), cfg.Generator.Seed)
	require.Equal(t, "/tmp/env-out", cfg.Output.Dir)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  numDocuments: 0\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "numDocuments")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := config.PostgresConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		Database: "d", SSLMode: "disable",
	}
	require.Equal(t,
		"host=localhost port=5432 user=u password=p dbname=d sslmode=disable",
		cfg.DSN())
}
