// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import "context"

// # Course Data Access

// Repository defines the data access contract for courses.
//
// Absence is never an error: lookups report it through found=false and
// deletes of unknown ids are no-ops. Referential checks and cascades are
// enforced by the backend.
type Repository interface {

	/*
		FindAll returns every course ordered by id.

		Returns:
		  - []*Course: Possibly empty, never nil
		  - error: Storage failures
	*/
	FindAll(ctx context.Context) ([]*Course, error)

	/*
		FindByID returns the course with the given id.

		Returns:
		  - *Course: The stored row, nil when missing
		  - bool: Whether the row exists
		  - error: Storage failures
	*/
	FindByID(ctx context.Context, id int64) (*Course, bool, error)

	/*
		FindByName returns the course with the given display name.
		When several courses share the name, the one with the lowest id wins.
	*/
	FindByName(ctx context.Context, name string) (*Course, bool, error)

	// ExistsByID reports whether a course with the given id is stored.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	/*
		Save inserts or overwrites a course.

		Description: A zero id, or an id matching no row, inserts a new row
		under a store-assigned id with both timestamps equal. Otherwise the
		matching row is overwritten, keeping its creation timestamp. The
		argument is updated with the persisted id and timestamps.
	*/
	Save(ctx context.Context, course *Course) error

	/*
		UpdateIfExists overwrites the row matching course.ID in a single atomic
		step. It returns false, and writes nothing, when no such row exists.
	*/
	UpdateIfExists(ctx context.Context, course *Course) (bool, error)

	// DeleteByID removes a course and its chapters. Unknown ids are ignored.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteIfExists removes a course atomically and reports whether it existed.
	DeleteIfExists(ctx context.Context, id int64) (bool, error)
}
