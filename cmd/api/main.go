// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the course catalog HTTP API server.
//
// # Startup Sequence
//
//  1. Load .env (when present) and initialize the structured logger.
//  2. Load configuration from environment variables.
//  3. Open the configured store (PostgreSQL + migrations, SQLite, or memory).
//  4. Connect to Redis when a URL is configured and cache course lookups.
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taibuivan/lmscatalog/internal/api"
	"github.com/taibuivan/lmscatalog/internal/catalog"
	"github.com/taibuivan/lmscatalog/internal/platform/config"
	"github.com/taibuivan/lmscatalog/internal/platform/constants"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
	"github.com/taibuivan/lmscatalog/internal/platform/migration"
	pgstore "github.com/taibuivan/lmscatalog/internal/platform/postgres"
	redisstore "github.com/taibuivan/lmscatalog/internal/platform/redis"
	"github.com/taibuivan/lmscatalog/internal/platform/sqlite"
)

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
		slog.Bool("cache_enabled", cfg.CacheEnabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Store ──────────────────────────────────────────────────────────
	var (
		stores catalog.Stores
		checks []api.HealthCheck
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, pgstore.PoolOptions{
			DSN:      cfg.DatabaseURL,
			MaxConns: cfg.DatabaseMaxConns,
			MinConns: cfg.DatabaseMinConns,
		}, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		migrator := migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log)
		must(log, migrator.Up(), "run migrations")

		stores = catalog.NewPostgresStores(pool)
		checks = append(checks,
			api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
			api.HealthCheck{Name: "schema", Check: func(context.Context) error { _, err := migrator.Version(); return err }},
		)

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, log)
		must(log, err, "open sqlite")
		defer func() {
			log.Info("closing sqlite database")
			if cerr := sqlite.Close(db); cerr != nil {
				log.Error("sqlite close error", slog.Any("error", cerr))
			}
		}()

		stores = catalog.NewGormStores(db)
		checks = append(checks, api.HealthCheck{Name: "sqlite", Check: func(ctx context.Context) error { return sqlite.Ping(ctx, db) }})

	default:
		log.Warn("memory_store_selected", slog.String("hint", "data is lost on restart"))
		stores = catalog.NewMemoryStores(memstore.New())
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	if cfg.CacheEnabled() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		stores = stores.WithCourseCache(redisstore.NewCache(rdb), cfg.CacheTTL, log)
		checks = append(checks, api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }})
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(checks, log)
	handlers := catalog.NewHandlers(catalog.NewServices(stores, log))

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Course:    handlers.Course,
		Chapter:   handlers.Chapter,
		Lesson:    handlers.Lesson,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}

	log.Info("server stopped")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
