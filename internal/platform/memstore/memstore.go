// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore provides an in-process relational store used by the memory
backend and by tests.

It mimics the subset of SQL semantics the catalog relies on:

  - Identity: every [Table] owns an auto-increment sequence.
  - Referential integrity: [Table.References] rejects rows whose parent is missing.
  - Cascades: [Table.CascadeFrom] deletes child rows when a parent row is deleted.

All tables created from one [DB] share a single lock, so a cascade spanning
several tables is atomic. Table methods are not locked themselves; callers
wrap them in [DB.View] or [DB.Update].
*/
package memstore

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrForeignKey is returned when a row references a parent that does not exist.
var ErrForeignKey = errors.New("memstore: foreign key violation")

// # Database

// DB groups tables behind a single reader/writer lock.
type DB struct {
	mu       sync.RWMutex
	now      func() time.Time
	tables   map[string]interface{ Has(id int64) bool }
	cascades map[string][]func(parentID int64)
}

// Option customises a [DB].
type Option func(*DB)

// WithClock overrides the time source used to stamp rows.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// New creates an empty database.
func New(opts ...Option) *DB {
	db := &DB{
		now:      time.Now,
		tables:   make(map[string]interface{ Has(id int64) bool }),
		cascades: make(map[string][]func(int64)),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// View runs fn under the shared read lock.
func (db *DB) View(fn func()) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn()
}

// Update runs fn under the exclusive write lock.
func (db *DB) Update(fn func() error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn()
}

// # Tables

// Meta tells a [Table] how to read and write the bookkeeping fields of T.
type Meta[T any] struct {
	ID      func(*T) int64
	SetID   func(*T, int64)
	Created func(*T) time.Time
	Stamp   func(row *T, created, updated time.Time)
}

// Table is an identity-keyed collection of T values.
// Rows are stored by value, so callers never alias stored state.
type Table[T any] struct {
	db     *DB
	name   string
	meta   Meta[T]
	rows   map[int64]T
	nextID int64
}

// NewTable registers a new table on db.
func NewTable[T any](db *DB, name string, meta Meta[T]) *Table[T] {
	table := &Table[T]{
		db:   db,
		name: name,
		meta: meta,
		rows: make(map[int64]T),
	}

	db.mu.Lock()
	db.tables[name] = table
	db.mu.Unlock()

	return table
}

// CascadeFrom declares that rows of this table are deleted together with the
// parent row they reference (ON DELETE CASCADE).
func (t *Table[T]) CascadeFrom(parent string, parentID func(*T) int64) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	t.db.cascades[parent] = append(t.db.cascades[parent], func(id int64) {
		for _, childID := range t.idsWhere(func(row *T) bool { return parentID(row) == id }) {
			t.Delete(childID)
		}
	})
}

// References returns [ErrForeignKey] unless the parent table holds id.
func (t *Table[T]) References(parent string, id int64) error {
	table, ok := t.db.tables[parent]
	if !ok || !table.Has(id) {
		return fmt.Errorf("%w: %s references missing %s %d", ErrForeignKey, t.name, parent, id)
	}
	return nil
}

// Has reports whether a row with id exists.
func (t *Table[T]) Has(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

// Get returns a copy of the row with id.
func (t *Table[T]) Get(id int64) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// All returns every row ordered by id.
func (t *Table[T]) All() []T {
	return t.Where(func(*T) bool { return true })
}

// Where returns the rows matching predicate ordered by id.
func (t *Table[T]) Where(predicate func(*T) bool) []T {
	ids := t.idsWhere(predicate)
	result := make([]T, 0, len(ids))
	for _, id := range ids {
		result = append(result, t.rows[id])
	}
	return result
}

// First returns the matching row with the lowest id.
func (t *Table[T]) First(predicate func(*T) bool) (T, bool) {
	ids := t.idsWhere(predicate)
	if len(ids) == 0 {
		var zero T
		return zero, false
	}
	return t.rows[ids[0]], true
}

// Insert stores row under a freshly assigned id and stamps both timestamps.
func (t *Table[T]) Insert(row *T) {
	t.nextID++
	now := t.db.now()

	t.meta.SetID(row, t.nextID)
	t.meta.Stamp(row, now, now)
	t.rows[t.nextID] = *row
}

// Save overwrites the row sharing row's id, or inserts row with a new id when
// no such row exists. The creation timestamp of an overwritten row is kept.
func (t *Table[T]) Save(row *T) {
	if !t.Replace(row) {
		t.Insert(row)
	}
}

// Replace overwrites an existing row and reports whether one was found.
// Nothing is written when the id is unknown.
func (t *Table[T]) Replace(row *T) bool {
	id := t.meta.ID(row)
	current, ok := t.rows[id]
	if !ok {
		return false
	}

	t.meta.Stamp(row, t.meta.Created(&current), t.db.now())
	t.rows[id] = *row
	return true
}

// Delete removes the row with id, cascading to dependent tables.
// It reports whether a row was removed.
func (t *Table[T]) Delete(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}

	delete(t.rows, id)
	for _, cascade := range t.db.cascades[t.name] {
		cascade(id)
	}
	return true
}

// Len returns the number of stored rows.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

func (t *Table[T]) idsWhere(predicate func(*T) bool) []int64 {
	var ids []int64
	for id, row := range t.rows {
		if predicate(&row) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
