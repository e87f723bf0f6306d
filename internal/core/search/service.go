// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mangafire/mangafire/internal/core/genre"
	"github.com/mangafire/mangafire/internal/core/manga"
	"github.com/mangafire/mangafire/internal/platform/constants"
	"github.com/mangafire/mangafire/internal/platform/validate"
	"github.com/mangafire/mangafire/pkg/slice"
)

// # Service Layer

// Service orchestrates catalogue text search.
type Service struct {
	repo     Repository
	enricher Enricher
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, enricher Enricher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		enricher: enricher,
		logger:   logger,
	}
}

/*
Autocomplete returns a short suggestion list for a partial title.

Description: The query is trimmed before use. A blank query returns an
empty list without touching storage, which keeps keystroke-driven clients
cheap to serve.
*/
func (service *Service) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Suggestion{}, nil
	}

	if err := validateQuery(query); err != nil {
		return nil, err
	}

	return service.repo.Autocomplete(ctx, query)
}

/*
FullSearch returns one ranked, enriched page of catalogue entries.

Description: A blank query short-circuits to an empty page. Non-empty pages
are hydrated with genres and latest chapters through the same two batch
lookups regular discovery uses.
*/
func (service *Service) FullSearch(ctx context.Context, query string, filter manga.Filter, limit, offset int) ([]*manga.Manga, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*manga.Manga{}, 0, nil
	}

	if err := validateQuery(query); err != nil {
		return nil, 0, err
	}

	items, total, err := service.repo.FullSearch(ctx, query, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := service.enrich(ctx, items); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// enrich hydrates a result page with genres and latest chapters. An empty
// page costs zero additional queries.
func (service *Service) enrich(ctx context.Context, items []*manga.Manga) error {
	if len(items) == 0 {
		return nil
	}

	ids := slice.Map(items, func(m *manga.Manga) int { return m.ID })

	genresByID, err := service.enricher.GenresForManga(ctx, ids)
	if err != nil {
		return err
	}

	chaptersByID, err := service.enricher.LatestChaptersForManga(ctx, ids, manga.LatestChaptersPerManga)
	if err != nil {
		return err
	}

	for _, m := range items {
		m.Genres = genresByID[m.ID]
		if m.Genres == nil {
			m.Genres = []genre.Genre{}
		}
		m.LatestChapters = chaptersByID[m.ID]
		if m.LatestChapters == nil {
			m.LatestChapters = []manga.ChapterSummary{}
		}
	}

	return nil
}

func validateQuery(query string) error {
	validator := validate.New()
	validator.MaxLen(FieldQuery, query, constants.MaxSearchQueryLength)

	if validator.HasErrors() {
		return validator.Err()
	}
	return nil
}
