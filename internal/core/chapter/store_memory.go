// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/taibuivan/lmscatalog/internal/platform/database/schema"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
	"github.com/taibuivan/lmscatalog/pkg/slice"
)

var tableMeta = memstore.Meta[Chapter]{
	ID:      func(c *Chapter) int64 { return c.ID },
	SetID:   func(c *Chapter, id int64) { c.ID = id },
	Created: func(c *Chapter) time.Time { return c.CreatedAt },
	Stamp: func(c *Chapter, created, updated time.Time) {
		c.CreatedAt, c.UpdatedAt = created, updated
	},
}

// MemoryRepository implements [Repository] on top of a [memstore.DB].
type MemoryRepository struct {
	db    *memstore.DB
	table *memstore.Table[Chapter]
}

// NewMemoryRepository registers the chapter table on db. Chapters are removed
// together with their course.
func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	table := memstore.NewTable(db, schema.CatalogChapter.Table, tableMeta)
	table.CascadeFrom(schema.CatalogCourse.Table, func(c *Chapter) int64 { return c.CourseID })

	return &MemoryRepository{db: db, table: table}
}

func (repository *MemoryRepository) FindAll(_ context.Context) ([]*Chapter, error) {
	var rows []Chapter
	repository.db.View(func() { rows = repository.table.All() })
	return slice.Pointers(rows), nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Chapter, bool, error) {
	var row Chapter
	var found bool
	repository.db.View(func() { row, found = repository.table.Get(id) })
	if !found {
		return nil, false, nil
	}
	return &row, true, nil
}

func (repository *MemoryRepository) FindByName(_ context.Context, name string) (*Chapter, bool, error) {
	var row Chapter
	var found bool
	repository.db.View(func() {
		row, found = repository.table.First(func(c *Chapter) bool { return c.Name == name })
	})
	if !found {
		return nil, false, nil
	}
	return &row, true, nil
}

func (repository *MemoryRepository) FindByCourseID(_ context.Context, courseID int64) ([]*Chapter, error) {
	var rows []Chapter
	repository.db.View(func() {
		rows = repository.table.Where(func(c *Chapter) bool { return c.CourseID == courseID })
	})

	// Rows arrive in id order, so a stable sort yields (order, id).
	slices.SortStableFunc(rows, func(a, b Chapter) int { return cmp.Compare(a.Order, b.Order) })
	return slice.Pointers(rows), nil
}

func (repository *MemoryRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	var found bool
	repository.db.View(func() { found = repository.table.Has(id) })
	return found, nil
}

func (repository *MemoryRepository) Save(_ context.Context, chapter *Chapter) error {
	err := repository.db.Update(func() error {
		if err := repository.table.References(schema.CatalogCourse.Table, chapter.CourseID); err != nil {
			return err
		}
		repository.table.Save(chapter)
		return nil
	})
	return dberr.Wrap(err, "save_chapter")
}

func (repository *MemoryRepository) UpdateIfExists(_ context.Context, chapter *Chapter) (bool, error) {
	var found bool
	err := repository.db.Update(func() error {
		if !repository.table.Has(chapter.ID) {
			return nil
		}
		if err := repository.table.References(schema.CatalogCourse.Table, chapter.CourseID); err != nil {
			return err
		}
		found = repository.table.Replace(chapter)
		return nil
	})
	return found, dberr.Wrap(err, "update_chapter")
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
