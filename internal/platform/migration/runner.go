// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// the PostgreSQL catalog schema.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. Migrations are applied
// at startup before traffic is served; the applied version is later reported
// by the readiness probe.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner applies and inspects migrations for one database.
type Runner struct {
	sourceURL   string
	databaseURL string
	logger      *slog.Logger
}

// NewRunner prepares a runner for the migrations stored under migrationsPath.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - migrationsPath: Filesystem path to the migrations directory.
//   - logger: Structured logger for migration events.
func NewRunner(dsn, migrationsPath string, logger *slog.Logger) *Runner {
	return &Runner{
		sourceURL:   "file://" + migrationsPath,
		databaseURL: ToPgx5DSN(dsn),
		logger:      logger,
	}
}

// Up applies all pending UP migrations. A dirty database is refused.
func (runner *Runner) Up() error {
	return runner.with(func(migrator *migrate.Migrate) error {
		currentVersion, isDirty, err := migrator.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("migration: failed to get current version: %w", err)
		}

		if isDirty {
			return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
		}

		runner.logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

		if err := migrator.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				runner.logger.Info("migration_already_up_to_date")
				return nil
			}
			return fmt.Errorf("migration: up failed: %w", err)
		}

		newVersion, _, _ := migrator.Version()
		runner.logger.Info("migration_successful",
			slog.Int("from_version", int(currentVersion)),
			slog.Int("to_version", int(newVersion)),
		)
		return nil
	})
}

// Version reports the applied schema version. It fails when no migration has
// run or the last one left the database dirty.
func (runner *Runner) Version() (uint, error) {
	var version uint
	err := runner.with(func(migrator *migrate.Migrate) error {
		current, isDirty, err := migrator.Version()
		if err != nil {
			return fmt.Errorf("migration: %w", err)
		}
		if isDirty {
			return fmt.Errorf("migration: dirty at version %d", current)
		}
		version = current
		return nil
	})
	return version, err
}

func (runner *Runner) with(fn func(*migrate.Migrate) error) error {
	migrator, err := migrate.New(runner.sourceURL, runner.databaseURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			runner.logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			runner.logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: runner.logger}
	return fn(migrator)
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// the golang-migrate driver registers. Other DSNs are returned unchanged.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
