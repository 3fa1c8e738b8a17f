// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the middle level of the catalog hierarchy.

Every [Chapter] belongs to exactly one course and owns zero or more lessons.
Chapters of a course are presented by their ordinal, ties broken by id.
*/
package chapter

import "time"

// EntityName labels chapters in NotFound messages and log events.
const EntityName = "Chapter"

// Field names used in lookups and validation messages.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldCourseID = "course.id"
)

// Chapter is an ordered section of a course.
type Chapter struct {
	ID          int64
	Name        string
	Description string
	Order       int   // position within the course; duplicates and negatives are accepted
	CourseID    int64 // must reference a stored course
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
