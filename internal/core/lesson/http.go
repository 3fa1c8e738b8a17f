// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lesson

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/lmscatalog/internal/platform/request"
	"github.com/taibuivan/lmscatalog/internal/platform/respond"
	"github.com/taibuivan/lmscatalog/pkg/slice"
)

// # Handler Implementation

// Handler implements the HTTP layer for lesson management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new lesson [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a router to be mounted at /lessons.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listLessons)
	router.Get("/search", handler.searchLessons)
	router.Get("/{id}", handler.getLesson)
	router.Get("/by-name/{name}", handler.getLessonByName)
	router.Get("/by-chapter/{chapterID}", handler.listLessonsByChapter)
	router.Get("/by-course/{courseID}", handler.listLessonsByCourse)
	router.Post("/", handler.createLesson)
	router.Put("/", handler.updateLesson)
	router.Delete("/{id}", handler.deleteLesson)

	return router
}

// # Lesson Retrieval

// GET /api/v1/lessons.
func (handler *Handler) listLessons(writer http.ResponseWriter, request *http.Request) {
	handler.writeList(writer, request)(handler.service.GetAll(request.Context()))
}

/*
GET /api/v1/lessons/search?q=.

Request:
  - q: string (name fragment, case and accent insensitive)

Response:
  - 200: []DTO: Matches ordered by id; empty for a blank fragment
*/
func (handler *Handler) searchLessons(writer http.ResponseWriter, request *http.Request) {
	fragment := requestutil.Query(request, "q")
	handler.writeList(writer, request)(handler.service.SearchLessons(request.Context(), fragment))
}

// GET /api/v1/lessons/{id}.
func (handler *Handler) getLesson(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lesson, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(lesson))
}

// GET /api/v1/lessons/by-name/{name}.
func (handler *Handler) getLessonByName(writer http.ResponseWriter, request *http.Request) {
	lesson, err := handler.service.GetByName(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(lesson))
}

// GET /api/v1/lessons/by-chapter/{chapterID}.
func (handler *Handler) listLessonsByChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, "chapterID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writeList(writer, request)(handler.service.GetLessonsByChapterID(request.Context(), chapterID))
}

/*
GET /api/v1/lessons/by-course/{courseID}.

Response:
  - 200: []DTO: Lessons of every chapter of the course; empty for unknown courses
  - 400: ErrValidation: Non-numeric course id
*/
func (handler *Handler) listLessonsByCourse(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.ID(request, "courseID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writeList(writer, request)(handler.service.GetLessonsByCourseID(request.Context(), courseID))
}

// # Lesson Mutations

/*
POST /api/v1/lessons.

Request:
  - body: DTO with chapter.id set

Response:
  - 201: DTO: Created lesson
  - 400: ErrInvalidJSON/Validation: Invalid payload or missing chapter
*/
func (handler *Handler) createLesson(writer http.ResponseWriter, request *http.Request) {
	input, err := decode(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lesson, err := handler.service.Create(request.Context(), input.ToEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ToDTO(lesson))
}

// PUT /api/v1/lessons.
func (handler *Handler) updateLesson(writer http.ResponseWriter, request *http.Request) {
	input, err := decode(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lesson, err := handler.service.Update(request.Context(), input.ToEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(lesson))
}

// DELETE /api/v1/lessons/{id}.
func (handler *Handler) deleteLesson(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteByID(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Internal Helpers

// writeList renders a listing result, or the error that produced it.
func (handler *Handler) writeList(writer http.ResponseWriter, request *http.Request) func([]*Lesson, error) {
	return func(lessons []*Lesson, err error) {
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, slice.Map(lessons, ToDTO))
	}
}

func decode(request *http.Request) (DTO, error) {
	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return input, err
	}
	return input, input.Validate()
}
