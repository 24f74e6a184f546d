package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Casework CaseworkConfig `mapstructure:"casework"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CatalogConfig controls rule catalog loading and caching.
type CatalogConfig struct {
	BundleDir string `mapstructure:"bundle_dir"` // directory of catalog JSON bundles, optional
	CacheTTL  int    `mapstructure:"cache_ttl"`  // seconds; redis entry cache
}

func (c CatalogConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL <= 0 {
		return time.Hour
	}
	return time.Duration(c.CacheTTL) * time.Second
}

// CaseworkConfig controls case mutation behavior.
type CaseworkConfig struct {
	TransitionTimeout int `mapstructure:"transition_timeout"` // milliseconds
	ConflictRetries   int `mapstructure:"conflict_retries"`

	// Due-date offsets, in days, for the default action item generated when a
	// case enters the stage.
	SubmittedDueDays int `mapstructure:"submitted_due_days"`
	InvitedDueDays   int `mapstructure:"invited_due_days"`
	AppliedDueDays   int `mapstructure:"applied_due_days"`
}

func (c CaseworkConfig) GetTransitionTimeout() time.Duration {
	if c.TransitionTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TransitionTimeout) * time.Millisecond
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}
