// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"time"

	"github.com/taibuivan/lmscatalog/internal/platform/database/schema"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
	"github.com/taibuivan/lmscatalog/pkg/slice"
)

var tableMeta = memstore.Meta[Course]{
	ID:      func(c *Course) int64 { return c.ID },
	SetID:   func(c *Course, id int64) { c.ID = id },
	Created: func(c *Course) time.Time { return c.CreatedAt },
	Stamp: func(c *Course, created, updated time.Time) {
		c.CreatedAt, c.UpdatedAt = created, updated
	},
}

// MemoryRepository implements [Repository] on top of a [memstore.DB].
type MemoryRepository struct {
	db    *memstore.DB
	table *memstore.Table[Course]
}

// NewMemoryRepository registers the course table on db.
func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{
		db:    db,
		table: memstore.NewTable(db, schema.CatalogCourse.Table, tableMeta),
	}
}

func (repository *MemoryRepository) FindAll(_ context.Context) ([]*Course, error) {
	var rows []Course
	repository.db.View(func() { rows = repository.table.All() })
	return slice.Pointers(rows), nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Course, bool, error) {
	var row Course
	var found bool
	repository.db.View(func() { row, found = repository.table.Get(id) })
	if !found {
		return nil, false, nil
	}
	return &row, true, nil
}

func (repository *MemoryRepository) FindByName(_ context.Context, name string) (*Course, bool, error) {
	var row Course
	var found bool
	repository.db.View(func() {
		row, found = repository.table.First(func(c *Course) bool { return c.Name == name })
	})
	if !found {
		return nil, false, nil
	}
	return &row, true, nil
}

func (repository *MemoryRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	var found bool
	repository.db.View(func() { found = repository.table.Has(id) })
	return found, nil
}

func (repository *MemoryRepository) Save(_ context.Context, course *Course) error {
	return repository.db.Update(func() error {
		repository.table.Save(course)
		return nil
	})
}

func (repository *MemoryRepository) UpdateIfExists(_ context.Context, course *Course) (bool, error) {
	var found bool
	err := repository.db.Update(func() error {
		found = repository.table.Replace(course)
		return nil
	})
	return found, err
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
