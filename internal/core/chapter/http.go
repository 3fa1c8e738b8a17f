// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/lmscatalog/internal/platform/request"
	"github.com/taibuivan/lmscatalog/internal/platform/respond"
	"github.com/taibuivan/lmscatalog/pkg/slice"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a router to be mounted at /chapters.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listChapters)
	router.Get("/{id}", handler.getChapter)
	router.Get("/by-name/{name}", handler.getChapterByName)
	router.Get("/by-course/{courseID}", handler.listChaptersByCourse)
	router.Post("/", handler.createChapter)
	router.Put("/", handler.updateChapter)
	router.Delete("/{id}", handler.deleteChapter)

	return router
}

// # Chapter Retrieval

// GET /api/v1/chapters.
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(chapters, ToDTO))
}

/*
GET /api/v1/chapters/{id}.

Response:
  - 200: DTO
  - 400: ErrValidation: Non-numeric id
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(chapter))
}

// GET /api/v1/chapters/by-name/{name}.
func (handler *Handler) getChapterByName(writer http.ResponseWriter, request *http.Request) {
	chapter, err := handler.service.GetByName(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(chapter))
}

/*
GET /api/v1/chapters/by-course/{courseID}.

Response:
  - 200: []DTO: Ordered by order then id; empty for unknown courses
*/
func (handler *Handler) listChaptersByCourse(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.ID(request, "courseID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.GetChaptersByCourseID(request.Context(), courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(chapters, ToDTO))
}

// # Chapter Mutations

/*
POST /api/v1/chapters.

Request:
  - body: DTO with course.id set

Response:
  - 201: DTO: Created chapter
  - 400: ErrInvalidJSON/Validation: Invalid payload or missing course
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	input, err := decode(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Create(request.Context(), input.ToEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ToDTO(chapter))
}

// PUT /api/v1/chapters.
func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	input, err := decode(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.Update(request.Context(), input.ToEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(chapter))
}

// DELETE /api/v1/chapters/{id}.
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
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

func decode(request *http.Request) (DTO, error) {
	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return input, err
	}
	return input, input.Validate()
}
