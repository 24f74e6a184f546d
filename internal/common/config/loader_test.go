// internal/common/config/loader_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "immigration-engine", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "localhost:6379", cfg.Database.Redis.Address)
	assert.Equal(t, 3600, cfg.Catalog.CacheTTL)
	assert.Equal(t, 5000, cfg.Casework.TransitionTimeout)
	assert.Equal(t, 3, cfg.Casework.ConflictRetries)
	assert.Equal(t, 14, cfg.Casework.SubmittedDueDays)
	assert.Equal(t, 60, cfg.Casework.InvitedDueDays)
	assert.Equal(t, 180, cfg.Casework.AppliedDueDays)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestApplyDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "debug"
	cfg.Casework.SubmittedDueDays = 7
	applyDefaults(cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.Casework.SubmittedDueDays)
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	require.NoError(t, validateConfig(cfg))

	cfg.Logging.Level = "verbose"
	assert.Error(t, validateConfig(cfg))

	cfg.Logging.Level = "info"
	cfg.Casework.ConflictRetries = 0
	assert.Error(t, validateConfig(cfg))
}

func TestDurationHelpers(t *testing.T) {
	cfg := CaseworkConfig{TransitionTimeout: 250}
	assert.Equal(t, "250ms", cfg.GetTransitionTimeout().String())
	assert.Equal(t, "5s", CaseworkConfig{}.GetTransitionTimeout().String())

	assert.Equal(t, "2m0s", CatalogConfig{CacheTTL: 120}.GetCacheTTL().String())
	assert.Equal(t, "1h0m0s", CatalogConfig{}.GetCacheTTL().String())
}

func TestPostgresConfig_DSN(t *testing.T) {
	dsn := PostgresConfig{
		Host: "db", Port: 5433, User: "svc", Password: "secret",
		Database: "immigration", SSLMode: "require",
	}.GetDSN()
	assert.Equal(t, "host=db port=5433 user=svc password=secret dbname=immigration sslmode=require", dsn)
}
