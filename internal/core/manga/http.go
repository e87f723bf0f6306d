// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangafire/mangafire/internal/platform/middleware"
	requestutil "github.com/mangafire/mangafire/internal/platform/request"
	"github.com/mangafire/mangafire/internal/platform/respond"
	"github.com/mangafire/mangafire/internal/platform/sec"
	"github.com/mangafire/mangafire/pkg/convert"
	"github.com/mangafire/mangafire/pkg/pagination"
	"github.com/mangafire/mangafire/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalogue discovery and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new manga [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalogue endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): Accessible by all visitors for browsing.
//   - Management (Restricted): Requires [sec.RoleModerator] for state-mutating operations.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listManga)
	router.Get("/{slug}", handler.getManga)

	// ## Content Management (Moderator Protected)
	router.Group(func(restricted chi.Router) {
		restricted.Use(middleware.RequireRole(sec.RoleModerator))

		restricted.Post("/", handler.createManga)
		restricted.Patch("/{slug}", handler.updateManga)
		restricted.Delete("/{slug}", handler.deleteManga)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/manga.

Description: Retrieves a paginated page of the catalogue with dynamic
filtering, whitelisted sorting, and enrichment (genres + latest chapters).

Request:
  - search: string (title substring, wildcards escaped)
  - status: string (ongoing, completed, hiatus, cancelled)
  - type: string (manga, manhwa, manhua, one_shot, doujinshi)
  - year: string (comma-separated tokens: "1999" or "1990s")
  - minChapters: int
  - genreId: int (include by genre id)
  - excludeGenres: string (comma-separated genre ids, deduped, capped)
  - sortBy: string (rating, views, createdAt, updatedAt, releaseYear, title)
  - sortOrder: string (asc, desc)
  - page, limit: int

Response:
  - 200: []Manga with pagination meta
*/
func (handler *Handler) listManga(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Status:          Status(queryParams.Get("status")),
		Type:            Type(queryParams.Get("type")),
		Search:          queryParams.Get("search"),
		Years:           query.StringSlice(queryParams.Get("year")),
		ExcludeGenreIDs: query.IntSlice(query.StringSlice(queryParams.Get("excludeGenres"))),
	}

	if minChapters := convert.ToInt(queryParams.Get("minChapters")); minChapters > 0 {
		filter.MinChapters = minChapters
	}
	if genreID := convert.ToInt(queryParams.Get("genreId")); genreID > 0 {
		filter.GenreID = genreID
	}

	items, total, err := handler.service.ListManga(
		request.Context(),
		filter,
		queryParams.Get(FieldSort),
		queryParams.Get(FieldOrder),
		paginationParams.Limit,
		paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/manga/{slug}.

Description: Retrieves detailed metadata for a series by its URL slug and
bumps its view counter.

Response:
  - 200: Manga: Success
  - 404: NOT_FOUND: Unknown slug
*/
func (handler *Handler) getManga(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, FieldSlug)

	m, err := handler.service.GetManga(request.Context(), seriesSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, m)
}

// # Request Payloads

// mangaRequest defines the inbound JSON schema for create and update.
type mangaRequest struct {
	Title             string   `json:"title"`
	Slug              string   `json:"slug"`
	AlternativeTitles []string `json:"alternativeTitles"`
	Description       *string  `json:"description"`
	Author            *string  `json:"author"`
	Artist            *string  `json:"artist"`
	CoverImage        *string  `json:"coverImage"`
	Status            Status   `json:"status"`
	Type              Type     `json:"type"`
	Language          Language `json:"language"`
	ReleaseYear       *int     `json:"releaseYear"`
	GenreIDs          []int    `json:"genreIds"`
}

func (input mangaRequest) toEntity() *Manga {
	return &Manga{
		Title:             input.Title,
		Slug:              input.Slug,
		AlternativeTitles: input.AlternativeTitles,
		Description:       input.Description,
		Author:            input.Author,
		Artist:            input.Artist,
		CoverImage:        input.CoverImage,
		Status:            input.Status,
		Type:              input.Type,
		Language:          input.Language,
		ReleaseYear:       input.ReleaseYear,
		GenreIDs:          input.GenreIDs,
	}
}

// # Management Endpoints

/*
POST /api/manga.

Description: Creates a new series. Slugs are auto-generated from the title
if not provided.

Response:
  - 201: Manga: Created series
  - 400: VALIDATION_ERROR: Invalid input data
  - 409: CONFLICT: Duplicate slug
*/
func (handler *Handler) createManga(writer http.ResponseWriter, request *http.Request) {
	var input mangaRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	m := input.toEntity()
	if err := handler.service.CreateManga(request.Context(), m); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, m)
}

/*
PATCH /api/manga/{slug}.

Description: Applies partial updates to a series. Omitted fields keep their
current values; a provided genreIds array replaces all associations.

Response:
  - 200: Manga: Updated series
  - 404: NOT_FOUND: Unknown slug
*/
func (handler *Handler) updateManga(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, FieldSlug)

	var input mangaRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateManga(request.Context(), seriesSlug, input.toEntity())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/manga/{slug}.

Description: Removes a series. Chapters, volumes, pages, and genre
associations cascade at the database level.

Response:
  - 204: No Content
  - 404: NOT_FOUND: Unknown slug
*/
func (handler *Handler) deleteManga(writer http.ResponseWriter, request *http.Request) {
	seriesSlug := requestutil.Param(request, FieldSlug)

	if err := handler.service.DeleteManga(request.Context(), seriesSlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
