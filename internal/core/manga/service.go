// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"context"
	"log/slog"

	"github.com/mangafire/mangafire/internal/core/genre"
	"github.com/mangafire/mangafire/internal/platform/validate"
	"github.com/mangafire/mangafire/pkg/slice"
	"github.com/mangafire/mangafire/pkg/slug"
)

// # Service Layer

// Service orchestrates the business logic for the catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Discovery

/*
ListManga retrieves a paginated, filtered, enriched page of the catalogue.

Description: Validates the filter enums, delegates predicate construction and
execution to the repository, then attaches genres and the latest chapters to
every item using exactly two batch queries regardless of page size.

Parameters:
  - context: context.Context
  - filter: Filter (discovery criteria)
  - sortBy, order: whitelisted sort key and direction
  - limit, offset: page window

Returns:
  - []*Manga: enriched page items
  - int: total count of matching series
  - error: validation or repository errors
*/
func (service *Service) ListManga(context context.Context, filter Filter, sortBy, order string, limit, offset int) ([]*Manga, int, error) {
	validator := &validate.Validator{}
	if filter.Status != "" {
		validator.Custom(FieldStatus, !filter.Status.IsValid(), "Unknown status")
	}
	if filter.Type != "" {
		validator.Custom(FieldType, !filter.Type.IsValid(), "Unknown type")
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	items, total, err := service.repo.List(context, filter, sortBy, order, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := service.enrich(context, items); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

/*
GetManga fetches a single series by slug, with genres attached.

Description: Every successful detail fetch also bumps the series view
counter. The increment is best-effort: a failure is logged but never turns a
successful read into an error.
*/
func (service *Service) GetManga(context context.Context, seriesSlug string) (*Manga, error) {
	m, err := service.repo.FindBySlug(context, seriesSlug)
	if err != nil {
		return nil, err
	}

	genresByID, err := service.repo.GenresForManga(context, []int{m.ID})
	if err != nil {
		return nil, err
	}
	m.Genres = genresByID[m.ID]

	if err := service.repo.IncrementViews(context, m.ID); err != nil {
		service.logger.Warn("manga_view_increment_failed",
			slog.Int("manga_id", m.ID),
			slog.Any("error", err),
		)
	}

	return m, nil
}

// # Management

/*
CreateManga persists a new series.

Description: Validates required metadata, derives a URL slug from the title
when none is supplied, and stores the series together with its genre
associations in one transaction.
*/
func (service *Service) CreateManga(context context.Context, m *Manga) error {
	if m.Language == "" {
		m.Language = LanguageEN
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, m.Title).MaxLen(FieldTitle, m.Title, 500)
	validator.Required(FieldStatus, string(m.Status)).
		Custom(FieldStatus, m.Status != "" && !m.Status.IsValid(), "Unknown status")
	validator.Required(FieldType, string(m.Type)).
		Custom(FieldType, m.Type != "" && !m.Type.IsValid(), "Unknown type")
	validator.Custom(FieldLanguage, !m.Language.IsValid(), "Unknown language")

	if m.ReleaseYear != nil {
		validator.Range(FieldReleaseYear, *m.ReleaseYear, 1900, 2100)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if m.Slug == "" {
		m.Slug = slug.From(m.Title)
	}

	if err := service.repo.Create(context, m); err != nil {
		return err
	}

	service.logger.Info("manga_created",
		slog.Int("manga_id", m.ID),
		slog.String("title", m.Title),
	)

	return nil
}

/*
UpdateManga applies a partial update to an existing series.

Description: Loads the current record by slug, overlays the provided fields,
validates the merged result, and persists it. A nil GenreIDs slice leaves
associations untouched.
*/
func (service *Service) UpdateManga(context context.Context, seriesSlug string, patch *Manga) (*Manga, error) {
	current, err := service.repo.FindBySlug(context, seriesSlug)
	if err != nil {
		return nil, err
	}

	applyPatch(current, patch)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, current.Title).MaxLen(FieldTitle, current.Title, 500)
	validator.Slug(FieldSlug, current.Slug)
	validator.Custom(FieldStatus, !current.Status.IsValid(), "Unknown status")
	validator.Custom(FieldType, !current.Type.IsValid(), "Unknown type")
	validator.Custom(FieldLanguage, current.Language != "" && !current.Language.IsValid(), "Unknown language")
	if current.ReleaseYear != nil {
		validator.Range(FieldReleaseYear, *current.ReleaseYear, 1900, 2100)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, current); err != nil {
		return nil, err
	}

	service.logger.Info("manga_updated", slog.Int("manga_id", current.ID))

	return current, nil
}

/*
DeleteManga removes a series and all dependent content.
*/
func (service *Service) DeleteManga(context context.Context, seriesSlug string) error {
	current, err := service.repo.FindBySlug(context, seriesSlug)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, current.ID); err != nil {
		return err
	}

	service.logger.Warn("manga_deleted",
		slog.Int("manga_id", current.ID),
		slog.String("slug", current.Slug),
	)

	return nil
}

// # Internal Helpers

/*
enrich attaches genres and the latest chapters to a page of list items.

Exactly two batch queries run for a non-empty page; an empty page short
circuits without touching storage at all.
*/
func (service *Service) enrich(context context.Context, items []*Manga) error {
	if len(items) == 0 {
		return nil
	}

	mangaIDs := slice.Map(items, func(item *Manga) int { return item.ID })

	genresByManga, err := service.repo.GenresForManga(context, mangaIDs)
	if err != nil {
		return err
	}

	chaptersByManga, err := service.repo.LatestChaptersForManga(context, mangaIDs, LatestChaptersPerManga)
	if err != nil {
		return err
	}

	for _, item := range items {
		item.Genres = genresByManga[item.ID]
		item.LatestChapters = chaptersByManga[item.ID]

		// Keep the JSON shape stable: empty arrays instead of null.
		if item.Genres == nil {
			item.Genres = []genre.Genre{}
		}
		if item.LatestChapters == nil {
			item.LatestChapters = []ChapterSummary{}
		}
	}

	return nil
}

// applyPatch overlays the non-zero fields of patch onto current.
func applyPatch(current, patch *Manga) {
	if patch.Title != "" {
		current.Title = patch.Title
	}
	if patch.Slug != "" {
		current.Slug = patch.Slug
	}
	if patch.AlternativeTitles != nil {
		current.AlternativeTitles = patch.AlternativeTitles
	}
	if patch.Description != nil {
		current.Description = patch.Description
	}
	if patch.Author != nil {
		current.Author = patch.Author
	}
	if patch.Artist != nil {
		current.Artist = patch.Artist
	}
	if patch.CoverImage != nil {
		current.CoverImage = patch.CoverImage
	}
	if patch.Status != "" {
		current.Status = patch.Status
	}
	if patch.Type != "" {
		current.Type = patch.Type
	}
	if patch.Language != "" {
		current.Language = patch.Language
	}
	if patch.ReleaseYear != nil {
		current.ReleaseYear = patch.ReleaseYear
	}
	if patch.GenreIDs != nil {
		current.GenreIDs = patch.GenreIDs
	}
}
