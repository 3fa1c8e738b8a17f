// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lmscatalog/internal/core/course"
	"github.com/taibuivan/lmscatalog/internal/platform/memstore"
)

func newRouter() http.Handler {
	repo := course.NewMemoryRepository(memstore.New())
	return course.NewHandler(course.NewService(repo, slog.New(slog.DiscardHandler))).Routes()
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeData[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

/*
TestHandler_Lifecycle drives a course through create, read, update and delete.
*/
func TestHandler_Lifecycle(t *testing.T) {
	router := newRouter()

	// 1. Create
	recorder := serve(t, router, http.MethodPost, "/", `{"courseName":"Intro Go","description":"basics"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeData[course.DTO](t, recorder)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Intro Go", created.CourseName)

	// 2. Read by id and by name
	recorder = serve(t, router, http.MethodGet, "/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, created.ID, decodeData[course.DTO](t, recorder).ID)

	recorder = serve(t, router, http.MethodGet, "/by-name/Intro%20Go", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, created.ID, decodeData[course.DTO](t, recorder).ID)

	// 3. Update
	recorder = serve(t, router, http.MethodPut, "/", `{"id":1,"courseName":"Advanced Go"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Advanced Go", decodeData[course.DTO](t, recorder).CourseName)

	// 4. List
	recorder = serve(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	list := decodeData[[]course.DTO](t, recorder)
	require.Len(t, list, 1)
	assert.Equal(t, "Advanced Go", list[0].CourseName)

	// 5. Delete
	recorder = serve(t, router, http.MethodDelete, "/1", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serve(t, router, http.MethodGet, "/1", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_Errors maps core and input failures onto status codes.
*/
func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown_id", http.MethodGet, "/9", "", http.StatusNotFound, "NOT_FOUND"},
		{"unknown_name", http.MethodGet, "/by-name/nope", "", http.StatusNotFound, "NOT_FOUND"},
		{"non_numeric_id", http.MethodGet, "/abc", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_json", http.MethodPost, "/", "{", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"update_missing", http.MethodPut, "/", `{"id":9,"courseName":"x"}`, http.StatusNotFound, "NOT_FOUND"},
		{"delete_missing", http.MethodDelete, "/9", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(t, newRouter(), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, recorder.Code)

			var envelope struct {
				Code  string `json:"code"`
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.code, envelope.Code)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}

func TestHandler_List_EmptyIsArray(t *testing.T) {
	recorder := serve(t, newRouter(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[]}`, recorder.Body.String())
}
