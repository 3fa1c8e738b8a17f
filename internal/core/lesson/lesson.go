// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lesson manages the leaves of the catalog hierarchy.

Every [Lesson] belongs to exactly one chapter, and through it to one course.
Besides the per-chapter listing, lessons can be listed for a whole course and
searched by a fragment of their name.

# Cross-level Listing

[Service.GetLessonsByCourseID] prefers a store that implements
[CourseScopedFinder] and answers in one query. Other stores are served by
listing the chapters of the course and concatenating their lessons. Both
paths yield the same order: chapter order, chapter id, lesson order, lesson id.
*/
package lesson

import "time"

// EntityName labels lessons in NotFound messages and log events.
const EntityName = "Lesson"

// Field names used in lookups and validation messages.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldChapterID = "chapter.id"
)

// Lesson is an ordered unit of content within a chapter.
type Lesson struct {
	ID          int64
	Name        string
	Description string
	Order       int   // position within the chapter
	ChapterID   int64 // must reference a stored chapter
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
