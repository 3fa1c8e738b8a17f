// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/taibuivan/lmscatalog/internal/platform/database/schema"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
)

// record is the gorm row model for the courses table.
type record struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	CreatedTime time.Time `gorm:"column:created_time;autoCreateTime:false"`
	UpdatedTime time.Time `gorm:"column:updated_time;autoUpdateTime:false"`
}

func (record) TableName() string { return schema.CatalogCourse.Table }

func toRecord(course *Course) record {
	return record{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		CreatedTime: course.CreatedAt,
		UpdatedTime: course.UpdatedAt,
	}
}

func (r record) apply(course *Course) {
	course.ID = r.ID
	course.Name = r.Name
	course.Description = r.Description
	course.CreatedAt = r.CreatedTime
	course.UpdatedAt = r.UpdatedTime
}

// # Gorm Repository

// GormRepository implements [Repository] with gorm. It backs the SQLite driver.
type GormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormRepository constructs a gorm backed course store.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (repository *GormRepository) FindAll(ctx context.Context) ([]*Course, error) {
	var records []record
	if err := repository.db.WithContext(ctx).Order(schema.CatalogCourse.ID).Find(&records).Error; err != nil {
		return nil, dberr.Wrap(err, "list_courses")
	}

	courses := make([]*Course, len(records))
	for i, r := range records {
		courses[i] = &Course{}
		r.apply(courses[i])
	}
	return courses, nil
}

func (repository *GormRepository) FindByID(ctx context.Context, id int64) (*Course, bool, error) {
	return repository.first(repository.db.WithContext(ctx).Where(schema.CatalogCourse.ID+" = ?", id), "get_course")
}

func (repository *GormRepository) FindByName(ctx context.Context, name string) (*Course, bool, error) {
	return repository.first(repository.db.WithContext(ctx).Where(schema.CatalogCourse.Name+" = ?", name), "get_course_by_name")
}

func (repository *GormRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := repository.db.WithContext(ctx).Model(&record{}).Where(schema.CatalogCourse.ID+" = ?", id).Count(&count).Error
	return count > 0, dberr.Wrap(err, "exists_course")
}

func (repository *GormRepository) Save(ctx context.Context, course *Course) error {
	err := repository.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		replaced, err := repository.replace(tx, course)
		if err != nil || replaced {
			return err
		}

		row := toRecord(course)
		row.ID = 0
		row.CreatedTime = repository.now()
		row.UpdatedTime = row.CreatedTime
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		row.apply(course)
		return nil
	})
	return dberr.Wrap(err, "save_course")
}

func (repository *GormRepository) UpdateIfExists(ctx context.Context, course *Course) (bool, error) {
	var replaced bool
	err := repository.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		replaced, err = repository.replace(tx, course)
		return err
	})
	return replaced, dberr.Wrap(err, "update_course")
}

func (repository *GormRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := repository.DeleteIfExists(ctx, id)
	return err
}

func (repository *GormRepository) DeleteIfExists(ctx context.Context, id int64) (bool, error) {
	result := repository.db.WithContext(ctx).Delete(&record{}, id)
	if result.Error != nil {
		return false, dberr.Wrap(result.Error, "delete_course")
	}
	return result.RowsAffected > 0, nil
}

// replace overwrites an existing row inside tx, keeping its creation time.
func (repository *GormRepository) replace(tx *gorm.DB, course *Course) (bool, error) {
	if course.ID == 0 {
		return false, nil
	}

	var current record
	err := tx.Take(&current, course.ID).Error
	if dberr.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	row := toRecord(course)
	row.CreatedTime = current.CreatedTime
	row.UpdatedTime = repository.now()
	if err := tx.Save(&row).Error; err != nil {
		return false, err
	}

	row.apply(course)
	return true, nil
}

func (repository *GormRepository) first(query *gorm.DB, action string) (*Course, bool, error) {
	var row record
	err := query.Order(schema.CatalogCourse.ID).Take(&row).Error
	if dberr.IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, action)
	}

	course := &Course{}
	row.apply(course)
	return course, true, nil
}
