// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog assembles the course, chapter and lesson stores of one
backend and builds the services and handlers on top of them.

Every backend enforces the same contract: store-assigned identifiers,
referential checks on writes, and cascading deletes from course to chapter to
lesson. Only the SQL backends answer the cross-level lesson listing in a
single query.
*/
package catalog

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/taibuivan/lmscatalog/internal/core/chapter"
	"github.com/taibuivan/lmscatalog/internal/core/course"
	"github.com/taibuivan/lmscatalog/internal/core/lesson"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
)

// Stores bundles the repositories of one backend.
type Stores struct {
	Courses  course.Repository
	Chapters chapter.Repository
	Lessons  lesson.Repository
}

// NewMemoryStores registers the three tables on db. The course table is
// registered first so that chapter writes can check their parent.
func NewMemoryStores(db *memstore.DB) Stores {
	return Stores{
		Courses:  course.NewMemoryRepository(db),
		Chapters: chapter.NewMemoryRepository(db),
		Lessons:  lesson.NewMemoryRepository(db),
	}
}

// NewPostgresStores builds the pgx repositories on pool.
func NewPostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Courses:  course.NewPostgresRepository(pool),
		Chapters: chapter.NewPostgresRepository(pool),
		Lessons:  lesson.NewPostgresRepository(pool),
	}
}

// NewGormStores builds the gorm repositories on db.
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Courses:  course.NewGormRepository(db),
		Chapters: chapter.NewGormRepository(db),
		Lessons:  lesson.NewGormRepository(db),
	}
}

// WithCourseCache places a read-through cache in front of course lookups.
func (stores Stores) WithCourseCache(cache course.Cache, ttl time.Duration, logger *slog.Logger) Stores {
	stores.Courses = course.NewCachedRepository(stores.Courses, cache, ttl, logger)
	return stores
}

// # Services

// Services groups the per-entity services of the catalog.
type Services struct {
	Courses  *course.Service
	Chapters *chapter.Service
	Lessons  *lesson.Service
}

// NewServices constructs the services over stores.
func NewServices(stores Stores, logger *slog.Logger) Services {
	return Services{
		Courses:  course.NewService(stores.Courses, logger),
		Chapters: chapter.NewService(stores.Chapters, logger),
		Lessons:  lesson.NewService(stores.Lessons, stores.Chapters, logger),
	}
}

// # Handlers

// Handlers groups the per-entity HTTP handlers of the catalog.
type Handlers struct {
	Course  *course.Handler
	Chapter *chapter.Handler
	Lesson  *lesson.Handler
}

// NewHandlers constructs the HTTP handlers over services.
func NewHandlers(services Services) Handlers {
	return Handlers{
		Course:  course.NewHandler(services.Courses),
		Chapter: chapter.NewHandler(services.Chapters),
		Lesson:  lesson.NewHandler(services.Lessons),
	}
}
