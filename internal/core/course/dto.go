// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import "time"

// DTO is the wire representation of a [Course].
type DTO struct {
	ID          int64     `json:"id"`
	CourseName  string    `json:"courseName"`
	Description string    `json:"description"`
	CreatedTime time.Time `json:"createdTime"`
	UpdatedTime time.Time `json:"updatedTime"`
}

// Reference is the summary embedded by child entities.
type Reference struct {
	ID int64 `json:"id"`
}

// ToDTO converts a course into its wire form.
func ToDTO(course *Course) DTO {
	return DTO{
		ID:          course.ID,
		CourseName:  course.Name,
		Description: course.Description,
		CreatedTime: course.CreatedAt,
		UpdatedTime: course.UpdatedAt,
	}
}

// ToEntity converts the wire form back into a course.
func (dto DTO) ToEntity() *Course {
	return &Course{
		ID:          dto.ID,
		Name:        dto.CourseName,
		Description: dto.Description,
		CreatedAt:   dto.CreatedTime,
		UpdatedAt:   dto.UpdatedTime,
	}
}
