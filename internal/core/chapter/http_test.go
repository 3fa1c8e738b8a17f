// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/core/chapter"
	"github.com/taibuivan/lmscatalog/internal/core/course"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
)

func newRouter(t *testing.T) (http.Handler, *course.Course) {
	t.Helper()
	db := memstore.New()
	courses := course.NewMemoryRepository(db)
	owner := seedCourse(t, courses, "Go")

	service := chapter.NewService(chapter.NewMemoryRepository(db), slog.New(slog.DiscardHandler))
	return chapter.NewHandler(service).Routes(), owner
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_CreateAndList verifies the wire form and the by-course listing.
*/
func TestHandler_CreateAndList(t *testing.T) {
	router, owner := newRouter(t)

	recorder := serve(router, http.MethodPost, "/", `{"chapterName":"Basics","order":1,"course":{"id":1}}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "Basics", created.Data["chapterName"])
	assert.Equal(t, map[string]any{"id": float64(owner.ID)}, created.Data["course"])

	recorder = serve(router, http.MethodGet, "/by-course/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var listed struct {
		Data []chapter.DTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, owner.ID, listed.Data[0].Course.ID)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing_course", http.MethodPost, "/", `{"chapterName":"x"}`, http.StatusBadRequest},
		{"zero_course", http.MethodPost, "/", `{"chapterName":"x","course":{"id":0}}`, http.StatusBadRequest},
		{"unknown_course", http.MethodPost, "/", `{"chapterName":"x","course":{"id":77}}`, http.StatusInternalServerError},
		{"bad_course_param", http.MethodGet, "/by-course/x", "", http.StatusBadRequest},
		{"unknown_chapter", http.MethodGet, "/5", "", http.StatusNotFound},
		{"update_missing", http.MethodPut, "/", `{"id":5,"course":{"id":1}}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t)
			assert.Equal(t, tt.status, serve(router, tt.method, tt.path, tt.body).Code)
		})
	}
}

func TestDTO_RoundTrip(t *testing.T) {
	original := &chapter.Chapter{ID: 4, Name: "Basics", Description: "d", Order: -1, CourseID: 2}
	assert.Equal(t, original, chapter.ToDTO(original).ToEntity())
}
