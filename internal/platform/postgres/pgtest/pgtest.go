// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pgtest opens migrated PostgreSQL pools for store tests.
//
// # Usage
//
// Tests call [Open] and get a pool whose search_path points at a fresh
// schema holding the catalog tables. The schema is dropped when the test
// ends. Without TEST_DATABASE_URL the test is skipped, so the suite stays
// green on machines with no database.
package pgtest

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lmscatalog/internal/platform/migration"
	pgstore "github.com/taibuivan/lmscatalog/internal/platform/postgres"
)

// EnvURL names the variable holding a postgres:// URL for a disposable database.
const EnvURL = "TEST_DATABASE_URL"

// Open returns a pool scoped to a new, migrated schema.
func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvURL)
	}

	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	admin, err := pgstore.NewPool(ctx, pgstore.PoolOptions{DSN: dsn, MaxConns: 1}, logger)
	if err != nil {
		t.Fatalf("pgtest: connect: %v", err)
	}
	t.Cleanup(admin.Close)

	name := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	schema := pgx.Identifier{name}.Sanitize()
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		t.Fatalf("pgtest: create schema: %v", err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE"); err != nil {
			t.Logf("pgtest: drop schema %s: %v", name, err)
		}
	})

	scoped, err := withSearchPath(dsn, name)
	if err != nil {
		t.Fatalf("pgtest: %v", err)
	}

	if err := migration.NewRunner(scoped, migrationsPath(), logger).Up(); err != nil {
		t.Fatalf("pgtest: migrate: %v", err)
	}

	pool, err := pgstore.NewPool(ctx, pgstore.PoolOptions{DSN: scoped, MaxConns: 4}, logger)
	if err != nil {
		t.Fatalf("pgtest: connect scoped: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// withSearchPath adds a search_path runtime parameter to a postgres:// URL.
func withSearchPath(dsn, schema string) (string, error) {
	parsed, err := url.Parse(dsn)
	if err != nil || (parsed.Scheme != "postgres" && parsed.Scheme != "postgresql") {
		return "", fmt.Errorf("%s must be a postgres:// URL", EnvURL)
	}

	query := parsed.Query()
	query.Set("search_path", schema)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// migrationsPath locates data/migrations from this file, independent of the test's working directory.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(file), "..", "..", "..", "..")
	return filepath.Join(root, "data", "migrations")
}
