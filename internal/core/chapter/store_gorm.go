// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/taibuivan/lmscatalog/internal/platform/database/schema"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
)

// record is the gorm row model for the chapters table.
type record struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	OrderNumber int       `gorm:"column:order_number"`
	CourseID    int64     `gorm:"column:course_id"`
	CreatedTime time.Time `gorm:"column:created_time;autoCreateTime:false"`
	UpdatedTime time.Time `gorm:"column:updated_time;autoUpdateTime:false"`
}

func (record) TableName() string { return schema.CatalogChapter.Table }

func toRecord(chapter *Chapter) record {
	return record{
		ID:          chapter.ID,
		Name:        chapter.Name,
		Description: chapter.Description,
		OrderNumber: chapter.Order,
		CourseID:    chapter.CourseID,
		CreatedTime: chapter.CreatedAt,
		UpdatedTime: chapter.UpdatedAt,
	}
}

func (r record) apply(chapter *Chapter) {
	chapter.ID = r.ID
	chapter.Name = r.Name
	chapter.Description = r.Description
	chapter.Order = r.OrderNumber
	chapter.CourseID = r.CourseID
	chapter.CreatedAt = r.CreatedTime
	chapter.UpdatedAt = r.UpdatedTime
}

func fromRecords(records []record) []*Chapter {
	chapters := make([]*Chapter, len(records))
	for i, r := range records {
		chapters[i] = &Chapter{}
		r.apply(chapters[i])
	}
	return chapters
}

// # Gorm Repository

// GormRepository implements [Repository] with gorm. It backs the SQLite driver.
type GormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormRepository constructs a gorm backed chapter store.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (repository *GormRepository) FindAll(ctx context.Context) ([]*Chapter, error) {
	var records []record
	if err := repository.db.WithContext(ctx).Order(schema.CatalogChapter.ID).Find(&records).Error; err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	return fromRecords(records), nil
}

func (repository *GormRepository) FindByID(ctx context.Context, id int64) (*Chapter, bool, error) {
	return repository.first(repository.db.WithContext(ctx).Where(schema.CatalogChapter.ID+" = ?", id), "get_chapter")
}

func (repository *GormRepository) FindByName(ctx context.Context, name string) (*Chapter, bool, error) {
	return repository.first(repository.db.WithContext(ctx).Where(schema.CatalogChapter.Name+" = ?", name), "get_chapter_by_name")
}

func (repository *GormRepository) FindByCourseID(ctx context.Context, courseID int64) ([]*Chapter, error) {
	table := schema.CatalogChapter

	var records []record
	err := repository.db.WithContext(ctx).
		Where(table.CourseID+" = ?", courseID).
		Order(table.Order).
		Order(table.ID).
		Find(&records).Error
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters_by_course")
	}
	return fromRecords(records), nil
}

func (repository *GormRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := repository.db.WithContext(ctx).Model(&record{}).Where(schema.CatalogChapter.ID+" = ?", id).Count(&count).Error
	return count > 0, dberr.Wrap(err, "exists_chapter")
}

func (repository *GormRepository) Save(ctx context.Context, chapter *Chapter) error {
	err := repository.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		replaced, err := repository.replace(tx, chapter)
		if err != nil || replaced {
			return err
		}

		row := toRecord(chapter)
		row.ID = 0
		row.CreatedTime = repository.now()
		row.UpdatedTime = row.CreatedTime
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		row.apply(chapter)
		return nil
	})
	return dberr.Wrap(err, "save_chapter")
}

func (repository *GormRepository) UpdateIfExists(ctx context.Context, chapter *Chapter) (bool, error) {
	var replaced bool
	err := repository.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		replaced, err = repository.replace(tx, chapter)
		return err
	})
	return replaced, dberr.Wrap(err, "update_chapter")
}

func (repository *GormRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := repository.DeleteIfExists(ctx, id)
	return err
}

func (repository *GormRepository) DeleteIfExists(ctx context.Context, id int64) (bool, error) {
	result := repository.db.WithContext(ctx).Delete(&record{}, id)
	if result.Error != nil {
		return false, dberr.Wrap(result.Error, "delete_chapter")
	}
	return result.RowsAffected > 0, nil
}

// replace overwrites an existing row inside tx, keeping its creation time.
func (repository *GormRepository) replace(tx *gorm.DB, chapter *Chapter) (bool, error) {
	if chapter.ID == 0 {
		return false, nil
	}

	var current record
	err := tx.Take(&current, chapter.ID).Error
	if dberr.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	row := toRecord(chapter)
	row.CreatedTime = current.CreatedTime
	row.UpdatedTime = repository.now()
	if err := tx.Save(&row).Error; err != nil {
		return false, err
	}

	row.apply(chapter)
	return true, nil
}

func (repository *GormRepository) first(query *gorm.DB, action string) (*Chapter, bool, error) {
	var row record
	err := query.Order(schema.CatalogChapter.ID).Take(&row).Error
	if dberr.IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, action)
	}

	chapter := &Chapter{}
	row.apply(chapter)
	return chapter, true, nil
}
