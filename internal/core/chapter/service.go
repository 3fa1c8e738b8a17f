// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/taibuivan/lmscatalog/internal/platform/apperr"
	"github.com/taibuivan/lmscatalog/internal/platform/dberr"
)

// # Service Layer

// Service orchestrates the business rules for chapters.
type Service struct {
	chapterRepo Repository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(chapterRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

// # Chapter Retrieval

// GetAll returns every chapter ordered by id.
func (service *Service) GetAll(ctx context.Context) ([]*Chapter, error) {
	return service.chapterRepo.FindAll(ctx)
}

// GetByID retrieves a single chapter or fails with NotFound.
func (service *Service) GetByID(ctx context.Context, id int64) (*Chapter, error) {
	chapter, found, err := service.chapterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByID(EntityName, id)
	}
	return chapter, nil
}

// GetByName retrieves a chapter by its display name or fails with NotFound.
func (service *Service) GetByName(ctx context.Context, name string) (*Chapter, error) {
	chapter, found, err := service.chapterRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByField(EntityName, FieldName, name)
	}
	return chapter, nil
}

/*
GetChaptersByCourseID lists the chapters of a course in presentation order.

Description: An unknown course yields an empty list rather than NotFound.
*/
func (service *Service) GetChaptersByCourseID(ctx context.Context, courseID int64) ([]*Chapter, error) {
	return service.chapterRepo.FindByCourseID(ctx, courseID)
}

// # Chapter Mutations

// Create persists a chapter. A CourseID matching no course fails in the store.
func (service *Service) Create(ctx context.Context, chapter *Chapter) (*Chapter, error) {
	if err := service.chapterRepo.Save(ctx, chapter); err != nil {
		service.logMissingParent(err, chapter)
		return nil, err
	}

	service.logger.Info("chapter_created",
		slog.Int64("chapter_id", chapter.ID),
		slog.Int64("course_id", chapter.CourseID),
		slog.Int("order", chapter.Order),
	)

	return chapter, nil
}

// Update overwrites an existing chapter in one atomic store call.
func (service *Service) Update(ctx context.Context, chapter *Chapter) (*Chapter, error) {
	found, err := service.chapterRepo.UpdateIfExists(ctx, chapter)
	if err != nil {
		service.logMissingParent(err, chapter)
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByID(EntityName, chapter.ID)
	}

	service.logger.Info("chapter_updated", slog.Int64("chapter_id", chapter.ID))

	return chapter, nil
}

// DeleteByID removes a chapter together with its lessons.
func (service *Service) DeleteByID(ctx context.Context, id int64) error {
	found, err := service.chapterRepo.DeleteIfExists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFoundByID(EntityName, id)
	}

	service.logger.Info("chapter_deleted", slog.Int64("chapter_id", id))

	return nil
}

// logMissingParent records writes rejected because the referenced course does not exist.
func (service *Service) logMissingParent(err error, chapter *Chapter) {
	if !dberr.IsForeignKeyViolation(err) {
		return
	}

	service.logger.Warn("chapter_course_missing",
		slog.Int64("chapter_id", chapter.ID),
		slog.Int64("course_id", chapter.CourseID),
	)
}
