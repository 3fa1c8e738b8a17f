// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson

import (
	"context"
	"log/slog"

	"github.com/taibuivan/lmscatalog/internal/core/chapter"
	"github.com/taibuivan/lmscatalog/internal/platform/apperr"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
	"github.com/taibuivan/lmscatalog/pkg/slice"
	"github.com/taibuivan/lmscatalog/pkg/textfold"
)

// # Service Layer

// Service orchestrates the business rules for lessons.
type Service struct {
	lessonRepo Repository
	chapters   ChapterFinder
	logger     *slog.Logger
}

// NewService constructs a new [Service]. chapters backs the cross-level
// listing when lessonRepo cannot answer it alone.
func NewService(lessonRepo Repository, chapters ChapterFinder, logger *slog.Logger) *Service {
	return &Service{
		lessonRepo: lessonRepo,
		chapters:   chapters,
		logger:     logger,
	}
}

// # Lesson Retrieval

// GetAll returns every lesson ordered by id.
func (service *Service) GetAll(ctx context.Context) ([]*Lesson, error) {
	return service.lessonRepo.FindAll(ctx)
}

// GetByID retrieves a single lesson or fails with NotFound.
func (service *Service) GetByID(ctx context.Context, id int64) (*Lesson, error) {
	lesson, found, err := service.lessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByID(EntityName, id)
	}
	return lesson, nil
}

// GetByName retrieves a lesson by its display name or fails with NotFound.
func (service *Service) GetByName(ctx context.Context, name string) (*Lesson, error) {
	lesson, found, err := service.lessonRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByField(EntityName, FieldName, name)
	}
	return lesson, nil
}

// GetLessonsByChapterID lists the lessons of a chapter; empty for unknown chapters.
func (service *Service) GetLessonsByChapterID(ctx context.Context, chapterID int64) ([]*Lesson, error) {
	return service.lessonRepo.FindByChapterID(ctx, chapterID)
}

/*
GetLessonsByCourseID lists every lesson of a course.

Description: Stores implementing [CourseScopedFinder] answer with a single
join. Otherwise the chapters of the course are listed and their lessons
concatenated; the two reads are not a snapshot.

Returns:
  - []*Lesson: Chapter order, chapter id, lesson order, lesson id; empty for unknown courses
  - error: Storage failures
*/
func (service *Service) GetLessonsByCourseID(ctx context.Context, courseID int64) ([]*Lesson, error) {
	if finder, ok := service.lessonRepo.(CourseScopedFinder); ok {
		return finder.FindByCourseID(ctx, courseID)
	}

	chapters, err := service.chapters.FindByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return slice.FlatMap(chapters, func(c *chapter.Chapter) ([]*Lesson, error) {
		return service.lessonRepo.FindByChapterID(ctx, c.ID)
	})
}

// SearchLessons returns lessons whose name contains fragment, ignoring case
// and accents. A blank fragment yields an empty list.
func (service *Service) SearchLessons(ctx context.Context, fragment string) ([]*Lesson, error) {
	if textfold.Fold(fragment) == "" {
		return make([]*Lesson, 0), nil
	}
	return service.lessonRepo.SearchByName(ctx, fragment)
}

// # Lesson Mutations

// Create persists a lesson. A ChapterID matching no chapter fails in the store.
func (service *Service) Create(ctx context.Context, lesson *Lesson) (*Lesson, error) {
	if err := service.lessonRepo.Save(ctx, lesson); err != nil {
		service.logMissingParent(err, lesson)
		return nil, err
	}

	service.logger.Info("lesson_created",
		slog.Int64("lesson_id", lesson.ID),
		slog.Int64("chapter_id", lesson.ChapterID),
		slog.Int("order", lesson.Order),
	)

	return lesson, nil
}

// Update overwrites an existing lesson in one atomic store call.
func (service *Service) Update(ctx context.Context, lesson *Lesson) (*Lesson, error) {
	found, err := service.lessonRepo.UpdateIfExists(ctx, lesson)
	if err != nil {
		service.logMissingParent(err, lesson)
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByID(EntityName, lesson.ID)
	}

	service.logger.Info("lesson_updated", slog.Int64("lesson_id", lesson.ID))

	return lesson, nil
}

// DeleteByID removes a lesson.
func (service *Service) DeleteByID(ctx context.Context, id int64) error {
	found, err := service.lessonRepo.DeleteIfExists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFoundByID(EntityName, id)
	}

	service.logger.Info("lesson_deleted", slog.Int64("lesson_id", id))

	return nil
}

// logMissingParent records writes rejected because the referenced chapter does not exist.
func (service *Service) logMissingParent(err error, lesson *Lesson) {
	if !dberr.IsForeignKeyViolation(err) {
		return
	}

	service.logger.Warn("lesson_chapter_missing",
		slog.Int64("lesson_id", lesson.ID),
		slog.Int64("chapter_id", lesson.ChapterID),
	)
}
