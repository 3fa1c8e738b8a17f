// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package course manages the root of the catalog hierarchy.

A [Course] owns zero or more chapters. It has no parent, so every course is
reachable through the flat listing and the identifier and name lookups.

# Core Responsibility

  - Storage: [Repository] and its memory, PostgreSQL and SQLite backends.
  - Policy: [Service] converts absent rows into NotFound errors.
  - Transport: [Handler] maps the wire form ("courseName") onto [Course].
*/
package course

import "time"

// EntityName labels courses in NotFound messages and log events.
const EntityName = "Course"

// Field names used in lookups and validation messages.
const (
	FieldID   = "id"
	FieldName = "name"
)

// Course is the root content entity of the catalog.
type Course struct {
	ID          int64
	Name        string // display name; lookups assume it is unique
	Description string
	CreatedAt   time.Time // set once, when the row is first stored
	UpdatedAt   time.Time // restamped on every successful write
}
