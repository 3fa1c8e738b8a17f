// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded SQLite database used by the gorm backend.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It owns the gorm
// connection, enforces foreign keys on every connection and creates the
// catalog schema, mirroring the PostgreSQL migrations.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// schemaDDL mirrors data/migrations for SQLite.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT     NOT NULL DEFAULT '',
		description  TEXT     NOT NULL DEFAULT '',
		created_time DATETIME NOT NULL,
		updated_time DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chapters (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT     NOT NULL DEFAULT '',
		description  TEXT     NOT NULL DEFAULT '',
		order_number INTEGER  NOT NULL DEFAULT 0,
		course_id    INTEGER  NOT NULL REFERENCES courses (id) ON DELETE CASCADE,
		created_time DATETIME NOT NULL,
		updated_time DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lessons (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT     NOT NULL DEFAULT '',
		name_folded  TEXT     NOT NULL DEFAULT '',
		description  TEXT     NOT NULL DEFAULT '',
		order_number INTEGER  NOT NULL DEFAULT 0,
		chapter_id   INTEGER  NOT NULL REFERENCES chapters (id) ON DELETE CASCADE,
		created_time DATETIME NOT NULL,
		updated_time DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_name ON courses (name, id)`,
	`CREATE INDEX IF NOT EXISTS idx_chapters_name ON chapters (name, id)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_name ON lessons (name, id)`,
	`CREATE INDEX IF NOT EXISTS idx_chapters_course ON chapters (course_id, order_number, id)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_chapter ON lessons (chapter_id, order_number, id)`,
}

// Open connects to the database at path and ensures the catalog schema exists.
//
// # Parameters
//   - path: A file path, or [MemoryPath] for a throwaway database.
//   - log: Structured logger for connection events.
func Open(path string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to get database instance: %w", err)
	}

	// SQLite serialises writers; a single connection also keeps an
	// in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	for _, statement := range schemaDDL {
		if err := db.Exec(statement).Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
		}
	}

	log.Info("sqlite database ready", slog.String("path", path))
	return db, nil
}

// Ping verifies that the underlying connection is healthy.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dsn enables foreign key enforcement, which SQLite leaves off by default.
func dsn(path string) string {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return path + separator + "_foreign_keys=1"
}
