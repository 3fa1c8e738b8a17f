// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/core/course"
)

func TestDTO_RoundTrip(t *testing.T) {
	stamp := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	original := &course.Course{
		ID:          3,
		Name:        "Intro Go",
		Description: "basics",
		CreatedAt:   stamp,
		UpdatedAt:   stamp.Add(time.Hour),
	}

	assert.Equal(t, original, course.ToDTO(original).ToEntity())
}

func TestDTO_WireNames(t *testing.T) {
	payload, err := json.Marshal(course.ToDTO(&course.Course{ID: 1, Name: "Go"}))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(payload, &fields))

	assert.Equal(t, "Go", fields["courseName"])
	assert.Contains(t, fields, "createdTime")
	assert.Contains(t, fields, "updatedTime")
	assert.NotContains(t, fields, "name")
}
