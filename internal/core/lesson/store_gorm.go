// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/taibuivan/lmscatalog/internal/platform/database/schema"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
	"github.com/taibuivan/lmscatalog/pkg/textfold"
)

// record is the gorm row model for the lessons table.
type record struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name"`
	NameFolded  string    `gorm:"column:name_folded"`
	Description string    `gorm:"column:description"`
	OrderNumber int       `gorm:"column:order_number"`
	ChapterID   int64     `gorm:"column:chapter_id"`
	CreatedTime time.Time `gorm:"column:created_time;autoCreateTime:false"`
	UpdatedTime time.Time `gorm:"column:updated_time;autoUpdateTime:false"`
}

func (record) TableName() string { return schema.CatalogLesson.Table }

func toRecord(lesson *Lesson) record {
	return record{
		ID:          lesson.ID,
		Name:        lesson.Name,
		NameFolded:  textfold.Fold(lesson.Name),
		Description: lesson.Description,
		OrderNumber: lesson.Order,
		ChapterID:   lesson.ChapterID,
		CreatedTime: lesson.CreatedAt,
		UpdatedTime: lesson.UpdatedAt,
	}
}

func (r record) apply(lesson *Lesson) {
	lesson.ID = r.ID
	lesson.Name = r.Name
	lesson.Description = r.Description
	lesson.Order = r.OrderNumber
	lesson.ChapterID = r.ChapterID
	lesson.CreatedAt = r.CreatedTime
	lesson.UpdatedAt = r.UpdatedTime
}

func fromRecords(records []record) []*Lesson {
	lessons := make([]*Lesson, len(records))
	for i, r := range records {
		lessons[i] = &Lesson{}
		r.apply(lessons[i])
	}
	return lessons
}

// # Gorm Repository

// GormRepository implements [Repository] and [CourseScopedFinder] with gorm.
type GormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormRepository constructs a gorm backed lesson store.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (repository *GormRepository) FindAll(ctx context.Context) ([]*Lesson, error) {
	var records []record
	if err := repository.db.WithContext(ctx).Order(schema.CatalogLesson.ID).Find(&records).Error; err != nil {
		return nil, dberr.Wrap(err, "list_lessons")
	}
	return fromRecords(records), nil
}

func (repository *GormRepository) FindByID(ctx context.Context, id int64) (*Lesson, bool, error) {
	return repository.first(repository.db.WithContext(ctx).Where(schema.CatalogLesson.ID+" = ?", id), "get_lesson")
}

func (repository *GormRepository) FindByName(ctx context.Context, name string) (*Lesson, bool, error) {
	return repository.first(repository.db.WithContext(ctx).Where(schema.CatalogLesson.Name+" = ?", name), "get_lesson_by_name")
}

func (repository *GormRepository) FindByChapterID(ctx context.Context, chapterID int64) ([]*Lesson, error) {
	table := schema.CatalogLesson

	var records []record
	err := repository.db.WithContext(ctx).
		Where(table.ChapterID+" = ?", chapterID).
		Order(table.Order).
		Order(table.ID).
		Find(&records).Error
	if err != nil {
		return nil, dberr.Wrap(err, "list_lessons_by_chapter")
	}
	return fromRecords(records), nil
}

// FindByCourseID lists every lesson of a course with one join through chapters.
func (repository *GormRepository) FindByCourseID(ctx context.Context, courseID int64) ([]*Lesson, error) {
	lesson, chapter := schema.CatalogLesson, schema.CatalogChapter
	l := func(column string) string { return lesson.Table + "." + column }
	c := func(column string) string { return chapter.Table + "." + column }

	var records []record
	err := repository.db.WithContext(ctx).
		Select(lesson.Table+".*").
		Joins("JOIN "+chapter.Table+" ON "+c(chapter.ID)+" = "+l(lesson.ChapterID)).
		Where(c(chapter.CourseID)+" = ?", courseID).
		Order(c(chapter.Order)).
		Order(c(chapter.ID)).
		Order(l(lesson.Order)).
		Order(l(lesson.ID)).
		Find(&records).Error
	if err != nil {
		return nil, dberr.Wrap(err, "list_lessons_by_course")
	}
	return fromRecords(records), nil
}

// SearchByName matches the folded fragment against the stored folded name, in id order.
func (repository *GormRepository) SearchByName(ctx context.Context, fragment string) ([]*Lesson, error) {
	needle := textfold.Fold(fragment)
	if needle == "" {
		return make([]*Lesson, 0), nil
	}

	table := schema.CatalogLesson

	var records []record
	err := repository.db.WithContext(ctx).
		Where("instr("+table.NameFolded+", ?) > 0", needle).
		Order(table.ID).
		Find(&records).Error
	if err != nil {
		return nil, dberr.Wrap(err, "search_lessons")
	}
	return fromRecords(records), nil
}

func (repository *GormRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := repository.db.WithContext(ctx).Model(&record{}).Where(schema.CatalogLesson.ID+" = ?", id).Count(&count).Error
	return count > 0, dberr.Wrap(err, "exists_lesson")
}

func (repository *GormRepository) Save(ctx context.Context, lesson *Lesson) error {
	err := repository.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		replaced, err := repository.replace(tx, lesson)
		if err != nil || replaced {
			return err
		}

		row := toRecord(lesson)
		row.ID = 0
		row.CreatedTime = repository.now()
		row.UpdatedTime = row.CreatedTime
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		row.apply(lesson)
		return nil
	})
	return dberr.Wrap(err, "save_lesson")
}

func (repository *GormRepository) UpdateIfExists(ctx context.Context, lesson *Lesson) (bool, error) {
	var replaced bool
	err := repository.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		replaced, err = repository.replace(tx, lesson)
		return err
	})
	return replaced, dberr.Wrap(err, "update_lesson")
}

func (repository *GormRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := repository.DeleteIfExists(ctx, id)
	return err
}

func (repository *GormRepository) DeleteIfExists(ctx context.Context, id int64) (bool, error) {
	result := repository.db.WithContext(ctx).Delete(&record{}, id)
	if result.Error != nil {
		return false, dberr.Wrap(result.Error, "delete_lesson")
	}
	return result.RowsAffected > 0, nil
}

// replace overwrites an existing row inside tx, keeping its creation time.
func (repository *GormRepository) replace(tx *gorm.DB, lesson *Lesson) (bool, error) {
	if lesson.ID == 0 {
		return false, nil
	}

	var current record
	err := tx.Take(&current, lesson.ID).Error
	if dberr.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	row := toRecord(lesson)
	row.CreatedTime = current.CreatedTime
	row.UpdatedTime = repository.now()
	if err := tx.Save(&row).Error; err != nil {
		return false, err
	}

	row.apply(lesson)
	return true, nil
}

func (repository *GormRepository) first(query *gorm.DB, action string) (*Lesson, bool, error) {
	var row record
	err := query.Order(schema.CatalogLesson.ID).Take(&row).Error
	if dberr.IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, action)
	}

	lesson := &Lesson{}
	row.apply(lesson)
	return lesson, true, nil
}
