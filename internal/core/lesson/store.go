// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson

import (
	"context"

	"github.com/taibuivan/lmscatalog/internal/core/chapter"
)

// # Lesson Data Access

// Repository defines the data access contract for lessons.
//
// It follows the same absence and upsert rules as the course store. Writes
// that point ChapterID at a missing chapter fail with an unclassified error.
type Repository interface {

	// FindAll returns every lesson ordered by id.
	FindAll(ctx context.Context) ([]*Lesson, error)

	// FindByID returns the lesson with the given id; found=false on a miss.
	FindByID(ctx context.Context, id int64) (*Lesson, bool, error)

	// FindByName returns the lowest-id lesson carrying name.
	FindByName(ctx context.Context, name string) (*Lesson, bool, error)

	// FindByChapterID returns the lessons of a chapter ordered by Order then id.
	FindByChapterID(ctx context.Context, chapterID int64) ([]*Lesson, error)

	/*
		SearchByName returns the lessons whose name contains fragment.

		Description: Matching ignores case and accents. A blank fragment
		matches nothing.

		Returns:
		  - []*Lesson: Ordered by id, never nil
		  - error: Storage failures
	*/
	SearchByName(ctx context.Context, fragment string) ([]*Lesson, error)

	// ExistsByID reports whether a lesson with the given id is stored.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save inserts or overwrites a lesson. See course.Repository.Save.
	Save(ctx context.Context, lesson *Lesson) error

	// UpdateIfExists atomically overwrites an existing lesson; false when missing.
	UpdateIfExists(ctx context.Context, lesson *Lesson) (bool, error)

	// DeleteByID removes a lesson. Unknown ids are ignored.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteIfExists removes a lesson atomically and reports whether it existed.
	DeleteIfExists(ctx context.Context, id int64) (bool, error)
}

// CourseScopedFinder is implemented by stores that can list the lessons of a
// course in a single query.
type CourseScopedFinder interface {
	// FindByCourseID returns lessons ordered by chapter order, chapter id,
	// lesson order and lesson id.
	FindByCourseID(ctx context.Context, courseID int64) ([]*Lesson, error)
}

// ChapterFinder lists the chapters of a course in presentation order.
// [chapter.Repository] satisfies it.
type ChapterFinder interface {
	FindByCourseID(ctx context.Context, courseID int64) ([]*chapter.Chapter, error)
}
