// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (stores, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Supported persistence backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the persistence backend.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL      string `env:"DATABASE_URL"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"25"`
	DatabaseMinConns int32  `env:"DATABASE_MIN_CONNS" envDefault:"5"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Embedded Database (SQLite through gorm)
	SQLitePath string `env:"SQLITE_PATH" envDefault:"catalog.db"`

	// Key-Value Cache (Redis). Empty disables the course cache.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required),
		validation.Field(&c.StoreDriver, validation.Required, validation.In(DriverPostgres, DriverSQLite, DriverMemory)),
		validation.Field(&c.DatabaseURL, validation.When(c.StoreDriver == DriverPostgres, validation.Required)),
		validation.Field(&c.MigrationPath, validation.When(c.StoreDriver == DriverPostgres, validation.Required)),
		validation.Field(&c.DatabaseMaxConns, validation.Min(int32(0))),
		validation.Field(&c.DatabaseMinConns, validation.Min(int32(0)), validation.When(c.DatabaseMaxConns > 0, validation.Max(c.DatabaseMaxConns))),
		validation.Field(&c.SQLitePath, validation.When(c.StoreDriver == DriverSQLite, validation.Required)),
		validation.Field(&c.CacheTTL, validation.Min(time.Duration(0))),
	)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
