// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/platform/config"
)

func TestLoad_MemoryDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", config.DriverMemory)
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", config.DriverPostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseURL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"memory", config.Config{ServerPort: "80", StoreDriver: config.DriverMemory}, false},
		{"sqlite", config.Config{ServerPort: "80", StoreDriver: config.DriverSQLite, SQLitePath: ":memory:"}, false},
		{"sqlite_without_path", config.Config{ServerPort: "80", StoreDriver: config.DriverSQLite}, true},
		{"postgres", config.Config{ServerPort: "80", StoreDriver: config.DriverPostgres, DatabaseURL: "postgres://x", MigrationPath: "m"}, false},
		{"unknown_driver", config.Config{ServerPort: "80", StoreDriver: "mongo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
