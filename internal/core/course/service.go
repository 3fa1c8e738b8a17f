// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"log/slog"

	"github.com/taibuivan/lmscatalog/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates the business rules for courses.
type Service struct {
	courseRepo Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(courseRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// # Course Retrieval

// GetAll returns every course ordered by id.
func (service *Service) GetAll(ctx context.Context) ([]*Course, error) {
	return service.courseRepo.FindAll(ctx)
}

/*
GetByID retrieves a single course.

Returns:
  - *Course: The stored course
  - error: NotFound when no course has the id
*/
func (service *Service) GetByID(ctx context.Context, id int64) (*Course, error) {
	course, found, err := service.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByID(EntityName, id)
	}
	return course, nil
}

// GetByName retrieves a course by its display name.
func (service *Service) GetByName(ctx context.Context, name string) (*Course, error) {
	course, found, err := service.courseRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByField(EntityName, FieldName, name)
	}
	return course, nil
}

// # Course Mutations

/*
Create persists a course.

Description: The store assigns the identifier. A caller supplied id that
matches an existing row overwrites that row.

Returns:
  - *Course: The persisted course with its id and timestamps
  - error: Persistence failures
*/
func (service *Service) Create(ctx context.Context, course *Course) (*Course, error) {
	if err := service.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}

	service.logger.Info("course_created",
		slog.Int64("course_id", course.ID),
		slog.String("name", course.Name),
	)

	return course, nil
}

/*
Update overwrites an existing course.

Description: Existence check and write happen in one store operation, so a
concurrent delete can never resurrect the row.

Returns:
  - error: NotFound when no course has course.ID
*/
func (service *Service) Update(ctx context.Context, course *Course) (*Course, error) {
	found, err := service.courseRepo.UpdateIfExists(ctx, course)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFoundByID(EntityName, course.ID)
	}

	service.logger.Info("course_updated", slog.Int64("course_id", course.ID))

	return course, nil
}

// DeleteByID removes a course together with its chapters and their lessons.
func (service *Service) DeleteByID(ctx context.Context, id int64) error {
	found, err := service.courseRepo.DeleteIfExists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFoundByID(EntityName, id)
	}

	service.logger.Info("course_deleted", slog.Int64("course_id", id))

	return nil
}
