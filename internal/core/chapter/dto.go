// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"time"

	"github.com/taibuivan/lmscatalog/internal/core/course"
	"github.com/taibuivan/lmscatalog/internal/platform/validate"
)

// DTO is the wire representation of a [Chapter].
type DTO struct {
	ID          int64             `json:"id"`
	ChapterName string            `json:"chapterName"`
	Description string            `json:"description"`
	Order       int               `json:"order"`
	Course      *course.Reference `json:"course"`
	CreatedTime time.Time         `json:"createdTime"`
	UpdatedTime time.Time         `json:"updatedTime"`
}

// Reference is the summary embedded by lessons.
type Reference struct {
	ID int64 `json:"id"`
}

// ToDTO converts a chapter into its wire form.
func ToDTO(chapter *Chapter) DTO {
	return DTO{
		ID:          chapter.ID,
		ChapterName: chapter.Name,
		Description: chapter.Description,
		Order:       chapter.Order,
		Course:      &course.Reference{ID: chapter.CourseID},
		CreatedTime: chapter.CreatedAt,
		UpdatedTime: chapter.UpdatedAt,
	}
}

// Validate rejects payloads that do not name their parent course.
func (dto DTO) Validate() error {
	var courseID int64
	if dto.Course != nil {
		courseID = dto.Course.ID
	}

	v := &validate.Validator{}
	return v.Reference(FieldCourseID, courseID).Err()
}

// ToEntity converts the wire form back into a chapter.
func (dto DTO) ToEntity() *Chapter {
	chapter := &Chapter{
		ID:          dto.ID,
		Name:        dto.ChapterName,
		Description: dto.Description,
		Order:       dto.Order,
		CreatedAt:   dto.CreatedTime,
		UpdatedAt:   dto.UpdatedTime,
	}
	if dto.Course != nil {
		chapter.CourseID = dto.Course.ID
	}
	return chapter
}
