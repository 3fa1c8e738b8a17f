// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Chapter Data Access

// Repository defines the data access contract for chapters.
//
// It follows the same absence and upsert rules as the course store. Writes
// that point CourseID at a missing course fail with an unclassified error.
type Repository interface {

	// FindAll returns every chapter ordered by id.
	FindAll(ctx context.Context) ([]*Chapter, error)

	// FindByID returns the chapter with the given id; found=false on a miss.
	FindByID(ctx context.Context, id int64) (*Chapter, bool, error)

	// FindByName returns the lowest-id chapter carrying name.
	FindByName(ctx context.Context, name string) (*Chapter, bool, error)

	/*
		FindByCourseID returns the chapters of a course.

		Returns:
		  - []*Chapter: Ordered by Order then id; empty for unknown courses
		  - error: Storage failures
	*/
	FindByCourseID(ctx context.Context, courseID int64) ([]*Chapter, error)

	// ExistsByID reports whether a chapter with the given id is stored.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save inserts or overwrites a chapter. See course.Repository.Save.
	Save(ctx context.Context, chapter *Chapter) error

	// UpdateIfExists atomically overwrites an existing chapter; false when missing.
	UpdateIfExists(ctx context.Context, chapter *Chapter) (bool, error)

	// DeleteByID removes a chapter and its lessons. Unknown ids are ignored.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteIfExists removes a chapter atomically and reports whether it existed.
	DeleteIfExists(ctx context.Context, id int64) (bool, error)
}
