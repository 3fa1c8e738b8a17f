// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson

import (
	"time"

	"github.com/taibuivan/lmscatalog/internal/core/chapter"
	"github.com/taibuivan/lmscatalog/internal/platform/validate"
)

// DTO is the wire representation of a [Lesson].
type DTO struct {
	ID          int64              `json:"id"`
	LessonName  string             `json:"lessonName"`
	Description string             `json:"description"`
	Order       int                `json:"order"`
	Chapter     *chapter.Reference `json:"chapter"`
	CreatedTime time.Time          `json:"createdTime"`
	UpdatedTime time.Time          `json:"updatedTime"`
}

// ToDTO converts a lesson into its wire form.
func ToDTO(lesson *Lesson) DTO {
	return DTO{
		ID:          lesson.ID,
		LessonName:  lesson.Name,
		Description: lesson.Description,
		Order:       lesson.Order,
		Chapter:     &chapter.Reference{ID: lesson.ChapterID},
		CreatedTime: lesson.CreatedAt,
		UpdatedTime: lesson.UpdatedAt,
	}
}

// Validate rejects payloads that do not name their parent chapter.
func (dto DTO) Validate() error {
	var chapterID int64
	if dto.Chapter != nil {
		chapterID = dto.Chapter.ID
	}

	v := &validate.Validator{}
	return v.Reference(FieldChapterID, chapterID).Err()
}

// ToEntity converts the wire form back into a lesson.
func (dto DTO) ToEntity() *Lesson {
	lesson := &Lesson{
		ID:          dto.ID,
		Name:        dto.LessonName,
		Description: dto.Description,
		Order:       dto.Order,
		CreatedAt:   dto.CreatedTime,
		UpdatedAt:   dto.UpdatedTime,
	}
	if dto.Chapter != nil {
		lesson.ChapterID = dto.Chapter.ID
	}
	return lesson
}
