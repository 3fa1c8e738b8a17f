// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/core/lesson"
)

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeList(t *testing.T, recorder *httptest.ResponseRecorder) []lesson.DTO {
	t.Helper()
	var envelope struct {
		Data []lesson.DTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

/*
TestHandler_Routes exercises the lesson endpoints against the memory stores.
*/
func TestHandler_Routes(t *testing.T) {
	f := memoryFixture()
	owner := f.course(t, "Go")
	basics := f.chapter(t, owner.ID, "Basics", 1)
	router := lesson.NewHandler(f.service).Routes()

	// 1. Create
	recorder := serve(router, http.MethodPost, "/", `{"lessonName":"Énumérations","order":1,"chapter":{"id":1}}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "Énumérations", created.Data["lessonName"])
	assert.Equal(t, map[string]any{"id": float64(basics.ID)}, created.Data["chapter"])

	// 2. Listings
	assert.Len(t, decodeList(t, serve(router, http.MethodGet, "/by-chapter/1", "")), 1)
	assert.Len(t, decodeList(t, serve(router, http.MethodGet, "/by-course/1", "")), 1)
	assert.Len(t, decodeList(t, serve(router, http.MethodGet, "/search?q=enum", "")), 1)

	recorder = serve(router, http.MethodGet, "/search", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[]}`, recorder.Body.String())

	// 3. Lookup by an escaped name
	recorder = serve(router, http.MethodGet, "/by-name/"+url.PathEscape("Énumérations"), "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 4. Delete
	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodDelete, "/1", "").Code)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing_chapter", http.MethodPost, "/", `{"lessonName":"x"}`, http.StatusBadRequest},
		{"invalid_json", http.MethodPost, "/", `{`, http.StatusBadRequest},
		{"unknown_chapter", http.MethodPost, "/", `{"lessonName":"x","chapter":{"id":9}}`, http.StatusInternalServerError},
		{"bad_course_param", http.MethodGet, "/by-course/abc", "", http.StatusBadRequest},
		{"bad_chapter_param", http.MethodGet, "/by-chapter/abc", "", http.StatusBadRequest},
		{"unknown_lesson", http.MethodGet, "/7", "", http.StatusNotFound},
		{"update_missing", http.MethodPut, "/", `{"id":7,"chapter":{"id":1}}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := lesson.NewHandler(memoryFixture().service).Routes()
			assert.Equal(t, tt.status, serve(router, tt.method, tt.path, tt.body).Code)
		})
	}
}

func TestDTO_RoundTrip(t *testing.T) {
	original := &lesson.Lesson{ID: 9, Name: "Loops", Description: "d", Order: 3, ChapterID: 4}
	assert.Equal(t, original, lesson.ToDTO(original).ToEntity())
}
