// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"context"

	"github.com/mangafire/mangafire/internal/core/genre"
)

// Repository defines the persistence contract for the catalogue.
type Repository interface {
	// List returns one page of series matching the filter, plus the total
	// count of matches. Page and count evaluate the same predicate set.
	List(ctx context.Context, filter Filter, sortBy, order string, limit, offset int) ([]*Manga, int, error)

	// FindByID returns a single series or dberr.ErrNotFound.
	FindByID(ctx context.Context, id int) (*Manga, error)

	// FindBySlug returns a single series by its URL slug or dberr.ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*Manga, error)

	// Create persists a new series and its genre associations. The entity's
	// ID and timestamps are populated on success.
	Create(ctx context.Context, m *Manga) error

	// Update overwrites the mutable columns of a series and, when GenreIDs
	// is non-nil, replaces its genre associations.
	Update(ctx context.Context, m *Manga) error

	// Delete removes a series. Chapters, volumes, and junction rows cascade.
	Delete(ctx context.Context, id int) error

	// IncrementViews atomically bumps the view counter.
	IncrementViews(ctx context.Context, id int) error

	// GenresForManga returns the genres of each listed series, keyed by
	// manga ID, in one query.
	GenresForManga(ctx context.Context, mangaIDs []int) (map[int][]genre.Genre, error)

	// LatestChaptersForManga returns up to perManga most recent chapters of
	// each listed series, keyed by manga ID, in one query.
	LatestChaptersForManga(ctx context.Context, mangaIDs []int, perManga int) (map[int][]ChapterSummary, error)
}
