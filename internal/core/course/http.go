// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/lmscatalog/internal/platform/request"
	"github.com/taibuivan/lmscatalog/internal/platform/respond"
	"github.com/taibuivan/lmscatalog/pkg/slice"
)

// # Handler Implementation

// Handler implements the HTTP layer for course management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new course [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a router to be mounted at /courses.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCourses)
	router.Get("/{id}", handler.getCourse)
	router.Get("/by-name/{name}", handler.getCourseByName)
	router.Post("/", handler.createCourse)
	router.Put("/", handler.updateCourse)
	router.Delete("/{id}", handler.deleteCourse)

	return router
}

// # Course Retrieval

/*
GET /api/v1/courses.

Response:
  - 200: []DTO: Every course ordered by id
*/
func (handler *Handler) listCourses(writer http.ResponseWriter, request *http.Request) {
	courses, err := handler.service.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(courses, ToDTO))
}

/*
GET /api/v1/courses/{id}.

Response:
  - 200: DTO
  - 400: ErrValidation: Non-numeric id
  - 404: ErrNotFound: Course not found
*/
func (handler *Handler) getCourse(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(course))
}

// GET /api/v1/courses/by-name/{name}.
func (handler *Handler) getCourseByName(writer http.ResponseWriter, request *http.Request) {
	course, err := handler.service.GetByName(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(course))
}

// # Course Mutations

/*
POST /api/v1/courses.

Request:
  - body: DTO (id and timestamps are assigned by the store)

Response:
  - 201: DTO: Created course
  - 400: ErrInvalidJSON: Invalid payload
*/
func (handler *Handler) createCourse(writer http.ResponseWriter, request *http.Request) {
	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.Create(request.Context(), input.ToEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ToDTO(course))
}

/*
PUT /api/v1/courses.

Request:
  - body: DTO carrying the id of the course to overwrite

Response:
  - 200: DTO: Updated course
  - 404: ErrNotFound: Course not found
*/
func (handler *Handler) updateCourse(writer http.ResponseWriter, request *http.Request) {
	var input DTO
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.Update(request.Context(), input.ToEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ToDTO(course))
}

/*
DELETE /api/v1/courses/{id}.

Response:
  - 204: No content
  - 404: ErrNotFound: Course not found
*/
func (handler *Handler) deleteCourse(writer http.ResponseWriter, request *http.Request) {
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
