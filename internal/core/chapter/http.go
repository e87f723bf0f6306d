// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangafire/mangafire/internal/platform/constants"
	"github.com/mangafire/mangafire/internal/platform/middleware"
	requestutil "github.com/mangafire/mangafire/internal/platform/request"
	"github.com/mangafire/mangafire/internal/platform/respond"
	"github.com/mangafire/mangafire/internal/platform/sec"
	"github.com/mangafire/mangafire/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for reading content.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches chapter and page endpoints under the series tree.
//
// # Routing Strategy
//
//   - Reading (Public): List and detail endpoints for all visitors.
//   - Management (Restricted): Requires [sec.RoleModerator].
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/manga/{slug}/chapters", func(router chi.Router) {
		// ## Public Reading Endpoints
		router.Get("/", handler.listChapters)
		router.Get("/{number}", handler.getChapter)

		// ## Content Management (Moderator Protected)
		router.Group(func(restricted chi.Router) {
			restricted.Use(middleware.RequireRole(sec.RoleModerator))

			restricted.Post("/", handler.createChapter)
			restricted.Patch("/{number}", handler.updateChapter)
			restricted.Delete("/{number}", handler.deleteChapter)
			restricted.Put("/{number}/pages", handler.replacePages)
		})
	})
}

// # Reading Endpoints

/*
GET /api/manga/{slug}/chapters.

Description: Retrieves a series' chapters in numeric reading order. Long
series are common, so the page limit cap is raised above the platform
default to let clients fetch a full chapter index in one request.

Request:
  - language: string (optional restriction, e.g. "en")
  - page, limit: int (limit capped at 1000)

Response:
  - 200: []Chapter with pagination meta
  - 404: NOT_FOUND: Unknown series slug
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, "slug")
	paginationParams := pagination.FromRequestMax(request, constants.MaxChapterPageLimit)

	chapters, total, err := handler.service.ListChapters(
		request.Context(),
		seriesSlug,
		request.URL.Query().Get(FieldLanguage),
		paginationParams.Limit,
		paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// chapterDetail flattens a chapter and its reader navigation into one
// response object.
type chapterDetail struct {
	*Chapter
	Navigation
}

/*
GET /api/manga/{slug}/chapters/{number}.

Description: Retrieves a single chapter with its full page list and the
neighboring chapter numbers for reader paging.

Request:
  - language: string (optional, disambiguates multi-language releases)

Response:
  - 200: Chapter with pages, prevChapter, nextChapter
  - 404: NOT_FOUND: Unknown series or chapter number
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, "slug")
	number := requestutil.Param(request, FieldNumber)

	chapter, navigation, err := handler.service.GetChapter(
		request.Context(),
		seriesSlug,
		number,
		request.URL.Query().Get(FieldLanguage),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapterDetail{Chapter: chapter, Navigation: navigation})
}

// # Request Payloads

// pageRequest is one submitted page. Numbers must run sequentially from 0.
type pageRequest struct {
	PageNumber int    `json:"pageNumber"`
	ImageURL   string `json:"imageUrl"`
	Width      *int   `json:"width"`
	Height     *int   `json:"height"`
}

func toPageInputs(pages []pageRequest) []PageInput {
	inputs := make([]PageInput, len(pages))
	for i, page := range pages {
		inputs[i] = PageInput{
			PageNumber: page.PageNumber,
			ImageURL:   page.ImageURL,
			Width:      page.Width,
			Height:     page.Height,
		}
	}
	return inputs
}

// chapterRequest defines the inbound JSON schema for create and update.
type chapterRequest struct {
	Number   string        `json:"number"`
	Title    *string       `json:"title"`
	Slug     string        `json:"slug"`
	Language string        `json:"language"`
	VolumeID *int          `json:"volumeId"`
	Pages    []pageRequest `json:"pages"`
}

func (input chapterRequest) toEntity() *Chapter {
	return &Chapter{
		Number:   input.Number,
		Title:    input.Title,
		Slug:     input.Slug,
		Language: input.Language,
		VolumeID: input.VolumeID,
	}
}

// pagesRequest defines the inbound JSON schema for full page replacement.
type pagesRequest struct {
	Pages []pageRequest `json:"pages"`
}

// # Management Endpoints

/*
POST /api/manga/{slug}/chapters.

Description: Creates a chapter with its pages in one atomic operation.
The page count is derived from the submitted pages, which must be numbered
sequentially from 0.

Response:
  - 201: Chapter: Created release
  - 400: VALIDATION_ERROR: Malformed number, slug, or page numbering
  - 404: NOT_FOUND: Unknown series slug
  - 409: CONFLICT: Duplicate number + language within the series
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, "slug")

	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := input.toEntity()
	if err := handler.service.CreateChapter(request.Context(), seriesSlug, chapter, toPageInputs(input.Pages)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

/*
PATCH /api/manga/{slug}/chapters/{number}.

Description: Applies partial updates to a chapter's metadata. Omitted
fields keep their current values; pages are managed through the dedicated
replacement endpoint.

Response:
  - 200: Chapter: Updated release
  - 404: NOT_FOUND: Unknown series or chapter number
  - 409: CONFLICT: Renumbering into an occupied slot
*/
func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, "slug")
	number := requestutil.Param(request, FieldNumber)

	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateChapter(
		request.Context(),
		seriesSlug,
		number,
		request.URL.Query().Get(FieldLanguage),
		input.toEntity(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/manga/{slug}/chapters/{number}.

Description: Removes a chapter; its pages cascade at the database level.

Response:
  - 204: No Content
  - 404: NOT_FOUND: Unknown series or chapter number
*/
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, "slug")
	number := requestutil.Param(request, FieldNumber)

	err := handler.service.DeleteChapter(
		request.Context(),
		seriesSlug,
		number,
		request.URL.Query().Get(FieldLanguage),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/manga/{slug}/chapters/{number}/pages.

Description: Replaces the chapter's entire page set in one transaction and
syncs the denormalized page count.

Request:
  - pages: []Page (complete replacement set, numbered sequentially from 0)

Response:
  - 200: Chapter: Updated release with the new page count
  - 400: VALIDATION_ERROR: Empty set or broken page numbering
  - 404: NOT_FOUND: Unknown series or chapter number
*/
func (handler *Handler) replacePages(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, "slug")
	number := requestutil.Param(request, FieldNumber)

	var input pagesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.ReplacePages(
		request.Context(),
		seriesSlug,
		number,
		request.URL.Query().Get(FieldLanguage),
		toPageInputs(input.Pages),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
