// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangafire/mangafire/internal/core/manga"
	"github.com/mangafire/mangafire/internal/platform/apperr"
	"github.com/mangafire/mangafire/internal/platform/respond"
	"github.com/mangafire/mangafire/pkg/convert"
	"github.com/mangafire/mangafire/pkg/pagination"
	"github.com/mangafire/mangafire/pkg/query"
)

// Handler implements the HTTP layer for catalogue search.
type Handler struct {
	service *Service
}

// NewHandler constructs a new search [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the search endpoint to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/search", handler.search)
}

/*
GET /api/search.

Description: Searches the catalogue by title and description. Autocomplete
mode returns a fixed-size suggestion list; full mode returns a ranked,
paginated result page honoring the same facets as catalogue discovery.

Request:
  - q: string (max 200 characters; blank returns an empty result)
  - mode: string (autocomplete or full, default full)
  - status, type, year, minChapters, genreId, excludeGenres: discovery facets
  - page, limit: int (full mode only)

Response:
  - 200: []Suggestion (autocomplete) or []Manga with pagination meta (full)
  - 400: VALIDATION_ERROR: Unknown mode or oversized query
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()
	searchQuery := queryParams.Get(FieldQuery)

	mode := Mode(queryParams.Get(FieldMode))
	if mode == "" {
		mode = ModeFull
	}
	if !mode.IsValid() {
		respond.Error(writer, request, apperr.ValidationError("Unknown search mode"))
		return
	}

	if mode == ModeAutocomplete {
		suggestions, err := handler.service.Autocomplete(request.Context(), searchQuery)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, suggestions)
		return
	}

	paginationParams := pagination.FromRequest(request)

	filter := manga.Filter{
		Status:          manga.Status(queryParams.Get("status")),
		Type:            manga.Type(queryParams.Get("type")),
		Years:           query.StringSlice(queryParams.Get("year")),
		ExcludeGenreIDs: query.IntSlice(query.StringSlice(queryParams.Get("excludeGenres"))),
	}
	if minChapters := convert.ToInt(queryParams.Get("minChapters")); minChapters > 0 {
		filter.MinChapters = minChapters
	}
	if genreID := convert.ToInt(queryParams.Get("genreId")); genreID > 0 {
		filter.GenreID = genreID
	}

	items, total, err := handler.service.FullSearch(
		request.Context(),
		searchQuery,
		filter,
		paginationParams.Limit,
		paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
