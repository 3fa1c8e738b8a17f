// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/taibuivan/lmscatalog/internal/platform/database/schema"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
	"github.com/taibuivan/lmscatalog/pkg/slice"
	"github.com/taibuivan/lmscatalog/pkg/textfold"
)

var tableMeta = memstore.Meta[Lesson]{
	ID:      func(l *Lesson) int64 { return l.ID },
	SetID:   func(l *Lesson, id int64) { l.ID = id },
	Created: func(l *Lesson) time.Time { return l.CreatedAt },
	Stamp: func(l *Lesson, created, updated time.Time) {
		l.CreatedAt, l.UpdatedAt = created, updated
	},
}

// MemoryRepository implements [Repository] on top of a [memstore.DB].
//
// It does not implement [CourseScopedFinder]; the service composes the
// chapter and lesson listings instead.
type MemoryRepository struct {
	db    *memstore.DB
	table *memstore.Table[Lesson]
}

// NewMemoryRepository registers the lesson table on db. Lessons are removed
// together with their chapter.
func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	table := memstore.NewTable(db, schema.CatalogLesson.Table, tableMeta)
	table.CascadeFrom(schema.CatalogChapter.Table, func(l *Lesson) int64 { return l.ChapterID })

	return &MemoryRepository{db: db, table: table}
}

func (repository *MemoryRepository) FindAll(_ context.Context) ([]*Lesson, error) {
	var rows []Lesson
	repository.db.View(func() { rows = repository.table.All() })
	return slice.Pointers(rows), nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Lesson, bool, error) {
	var row Lesson
	var found bool
	repository.db.View(func() { row, found = repository.table.Get(id) })
	if !found {
		return nil, false, nil
	}
	return &row, true, nil
}

func (repository *MemoryRepository) FindByName(_ context.Context, name string) (*Lesson, bool, error) {
	var row Lesson
	var found bool
	repository.db.View(func() {
		row, found = repository.table.First(func(l *Lesson) bool { return l.Name == name })
	})
	if !found {
		return nil, false, nil
	}
	return &row, true, nil
}

func (repository *MemoryRepository) FindByChapterID(_ context.Context, chapterID int64) ([]*Lesson, error) {
	var rows []Lesson
	repository.db.View(func() {
		rows = repository.table.Where(func(l *Lesson) bool { return l.ChapterID == chapterID })
	})

	slices.SortStableFunc(rows, func(a, b Lesson) int { return cmp.Compare(a.Order, b.Order) })
	return slice.Pointers(rows), nil
}

func (repository *MemoryRepository) SearchByName(_ context.Context, fragment string) ([]*Lesson, error) {
	var rows []Lesson
	repository.db.View(func() {
		rows = repository.table.Where(func(l *Lesson) bool { return textfold.Contains(l.Name, fragment) })
	})
	return slice.Pointers(rows), nil
}

func (repository *MemoryRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	var found bool
	repository.db.View(func() { found = repository.table.Has(id) })
	return found, nil
}

func (repository *MemoryRepository) Save(_ context.Context, lesson *Lesson) error {
	err := repository.db.Update(func() error {
		if err := repository.table.References(schema.CatalogChapter.Table, lesson.ChapterID); err != nil {
			return err
		}
		repository.table.Save(lesson)
		return nil
	})
	return dberr.Wrap(err, "save_lesson")
}

func (repository *MemoryRepository) UpdateIfExists(_ context.Context, lesson *Lesson) (bool, error) {
	var found bool
	err := repository.db.Update(func() error {
		if !repository.table.Has(lesson.ID) {
			return nil
		}
		if err := repository.table.References(schema.CatalogChapter.Table, lesson.ChapterID); err != nil {
			return err
		}
		found = repository.table.Replace(lesson)
		return nil
	})
	return found, dberr.Wrap(err, "update_lesson")
}

func (repository *MemoryRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := repository.DeleteIfExists(ctx, id)
	return err
}

func (repository *MemoryRepository) DeleteIfExists(_ context.Context, id int64) (bool, error) {
	var found bool
	err := repository.db.Update(func() error {
		found = repository.table.Delete(id)
		return nil
	})
	return found, err
}
