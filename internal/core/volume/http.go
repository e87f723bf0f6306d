// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package volume

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mangafire/mangafire/internal/platform/apperr"
	"github.com/mangafire/mangafire/internal/platform/middleware"
	requestutil "github.com/mangafire/mangafire/internal/platform/request"
	"github.com/mangafire/mangafire/internal/platform/respond"
	"github.com/mangafire/mangafire/internal/platform/sec"
)

// Handler implements the HTTP layer for volume management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new volume [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches volume endpoints under the series tree.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/manga/{slug}/volumes", func(router chi.Router) {
		router.Get("/", handler.listVolumes)

		router.Group(func(restricted chi.Router) {
			restricted.Use(middleware.RequireRole(sec.RoleModerator))

			restricted.Post("/", handler.createVolume)
			restricted.Patch("/{id}", handler.updateVolume)
			restricted.Delete("/{id}", handler.deleteVolume)
		})
	})
}

/*
GET /api/manga/{slug}/volumes.

Description: Retrieves all volumes of a series in ascending number order.

Response:
  - 200: []Volume
  - 404: NOT_FOUND: Unknown series slug
*/
func (handler *Handler) listVolumes(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, "slug")

	volumes, err := handler.service.ListVolumes(request.Context(), seriesSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, volumes)
}

// volumeRequest defines the inbound JSON schema for create and update.
type volumeRequest struct {
	Number     float64 `json:"number"`
	Title      *string `json:"title"`
	CoverImage *string `json:"coverImage"`
}

func (input volumeRequest) toEntity() *Volume {
	return &Volume{
		Number:     input.Number,
		Title:      input.Title,
		CoverImage: input.CoverImage,
	}
}

/*
POST /api/manga/{slug}/volumes.

Response:
  - 201: Volume: Created volume
  - 404: NOT_FOUND: Unknown series slug
  - 409: CONFLICT: Duplicate volume number within the series
*/
func (handler *Handler) createVolume(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, "slug")

	var input volumeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume := input.toEntity()
	if err := handler.service.CreateVolume(request.Context(), seriesSlug, volume); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, volume)
}

/*
PATCH /api/manga/{slug}/volumes/{id}.

Response:
  - 200: Volume: Updated volume
  - 404: NOT_FOUND: Unknown volume
*/
func (handler *Handler) updateVolume(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid volume id"))
		return
	}

	var input volumeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateVolume(request.Context(), id, input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/manga/{slug}/volumes/{id}.

Response:
  - 204: No Content
  - 404: NOT_FOUND: Unknown volume
*/
func (handler *Handler) deleteVolume(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid volume id"))
		return
	}

	if err := handler.service.DeleteVolume(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
