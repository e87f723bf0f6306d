// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package chapter

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mangafire/mangafire/internal/core/manga"
	"github.com/mangafire/mangafire/internal/platform/validate"
)

// SeriesResolver translates a public series slug into catalogue metadata.
// The manga repository satisfies it.
type SeriesResolver interface {
	FindBySlug(ctx context.Context, slug string) (*manga.Manga, error)
}

// # Service Layer

// Service orchestrates the business logic for reading content.
type Service struct {
	repo   Repository
	series SeriesResolver
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(repo Repository, series SeriesResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		series: series,
		logger: logger,
	}
}

// # Chapter Operations

/*
ListChapters returns one page of a series' chapters in numeric reading order.

Parameters:
  - ctx: context.Context
  - slug: string (Series slug)
  - language: string (Optional language restriction, empty for all)
  - limit, offset: int

Returns:
  - []*Chapter: Metadata for matched chapters
  - int: Total chapter count for the series/language
  - error: Unknown slug or storage failures
*/
func (service *Service) ListChapters(ctx context.Context, slug, language string, limit, offset int) ([]*Chapter, int, error) {
	series, err := service.series.FindBySlug(ctx, slug)
	if err != nil {
		return nil, 0, err
	}

	return service.repo.ListByManga(ctx, series.ID, language, limit, offset)
}

/*
GetChapter returns a single chapter with its pages and reader navigation.

Description: The chapter is addressed by its public number rather than a
database ID. Neighbor numbers are resolved numerically within the same
language scope the caller asked for.
*/
func (service *Service) GetChapter(ctx context.Context, slug, number, language string) (*Chapter, Navigation, error) {
	series, err := service.series.FindBySlug(ctx, slug)
	if err != nil {
		return nil, Navigation{}, err
	}

	chapter, err := service.repo.FindByNumber(ctx, series.ID, number, language)
	if err != nil {
		return nil, Navigation{}, err
	}

	pages, err := service.repo.PagesForChapter(ctx, chapter.ID)
	if err != nil {
		return nil, Navigation{}, err
	}
	chapter.Pages = pages

	navigation, err := service.repo.Neighbors(ctx, series.ID, chapter.Number, language)
	if err != nil {
		return nil, Navigation{}, err
	}

	return chapter, navigation, nil
}

/*
CreateChapter validates and persists a new chapter with its pages.

Description: The page count is derived from the submitted pages, which must
be numbered sequentially from 0. A missing language falls back to
[DefaultLanguage]. Duplicate number + language pairs within a series surface
as a conflict.
*/
func (service *Service) CreateChapter(ctx context.Context, slug string, chapter *Chapter, pages []PageInput) error {
	series, err := service.series.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	chapter.MangaID = series.ID

	if chapter.Language == "" {
		chapter.Language = DefaultLanguage
	}

	if err := validateChapter(chapter, true); err != nil {
		return err
	}
	if err := validatePages(pages); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, chapter, pages); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.Int("chapter_id", chapter.ID),
		slog.Int("manga_id", chapter.MangaID),
		slog.String("number", chapter.Number),
		slog.Int("page_count", chapter.PageCount),
	)

	return nil
}

/*
UpdateChapter applies a partial patch to a chapter's metadata.

Description: Zero-value patch fields keep their current values. Renumbering
into an occupied number + language slot surfaces as a conflict.
*/
func (service *Service) UpdateChapter(ctx context.Context, slug, number, language string, patch *Chapter) (*Chapter, error) {
	series, err := service.series.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	current, err := service.repo.FindByNumber(ctx, series.ID, number, language)
	if err != nil {
		return nil, err
	}

	if patch.Number != "" {
		current.Number = patch.Number
	}
	if patch.Slug != "" {
		current.Slug = patch.Slug
	}
	if patch.Language != "" {
		current.Language = patch.Language
	}
	if patch.Title != nil {
		current.Title = patch.Title
	}
	if patch.VolumeID != nil {
		current.VolumeID = patch.VolumeID
	}

	if err := validateChapter(current, false); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	return current, nil
}

// DeleteChapter removes a chapter and its pages.
func (service *Service) DeleteChapter(ctx context.Context, slug, number, language string) error {
	series, err := service.series.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	chapter, err := service.repo.FindByNumber(ctx, series.ID, number, language)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, chapter.ID); err != nil {
		return err
	}

	service.logger.Warn("chapter_deleted",
		slog.Int("chapter_id", chapter.ID),
		slog.Int("manga_id", chapter.MangaID),
		slog.String("number", chapter.Number),
	)

	return nil
}

/*
ReplacePages swaps a chapter's entire page set atomically.

Parameters:
  - ctx: context.Context
  - slug: string (Series slug)
  - number: string (Chapter number)
  - language: string (Optional language restriction)
  - pages: []PageInput (The complete replacement set, numbered from 0)
*/
func (service *Service) ReplacePages(ctx context.Context, slug, number, language string, pages []PageInput) (*Chapter, error) {
	series, err := service.series.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	chapter, err := service.repo.FindByNumber(ctx, series.ID, number, language)
	if err != nil {
		return nil, err
	}

	if err := validatePages(pages); err != nil {
		return nil, err
	}

	if err := service.repo.ReplacePages(ctx, chapter.ID, pages); err != nil {
		return nil, err
	}

	chapter.PageCount = len(pages)

	service.logger.Info("chapter_pages_replaced",
		slog.Int("chapter_id", chapter.ID),
		slog.Int("page_count", chapter.PageCount),
	)

	return chapter, nil
}

// validateChapter enforces the shared metadata rules for create and update.
// The slug is mandatory on create; updates validate it only when set.
func validateChapter(chapter *Chapter, slugRequired bool) error {
	validator := validate.New()
	validator.Required(FieldNumber, chapter.Number)
	validator.ChapterNumber(FieldNumber, chapter.Number)
	validator.MaxLen(FieldLanguage, chapter.Language, 10)

	if slugRequired || chapter.Slug != "" {
		validator.Required(FieldSlug, chapter.Slug)
		validator.Slug(FieldSlug, chapter.Slug)
		validator.MaxLen(FieldSlug, chapter.Slug, 200)
	}

	if chapter.Title != nil {
		validator.MaxLen("title", *chapter.Title, 500)
	}

	if validator.HasErrors() {
		return validator.Err()
	}
	return nil
}

// validatePages enforces the page set rules: at least one page, page numbers
// sequential starting from 0, and a URL per page.
func validatePages(pages []PageInput) error {
	validator := validate.New()
	validator.Custom(FieldPages, len(pages) == 0, "At least one page is required")

	numbers := make([]int, len(pages))
	for i, page := range pages {
		numbers[i] = page.PageNumber
		validator.Custom(FieldPages, page.ImageURL == "", "Every page needs an image URL")
		if page.Width != nil {
			validator.Custom(FieldPages, *page.Width <= 0, "Page width must be positive")
		}
		if page.Height != nil {
			validator.Custom(FieldPages, *page.Height <= 0, "Page height must be positive")
		}
	}

	sort.Ints(numbers)
	for i, number := range numbers {
		if number != i {
			validator.Custom(FieldPages, true, "Page numbers must be sequential starting from 0")
			break
		}
	}

	if validator.HasErrors() {
		return validator.Err()
	}
	return nil
}
