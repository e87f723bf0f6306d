// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package search

import (
	"context"

	"github.com/mangafire/mangafire/internal/core/genre"
	"github.com/mangafire/mangafire/internal/core/manga"
)

// Repository defines the persistence contract for text search.
type Repository interface {
	// Autocomplete returns up to the platform suggestion cap of hits for a
	// partial title, prefix matches first.
	Autocomplete(ctx context.Context, query string) ([]Suggestion, error)

	// FullSearch returns one ranked page of catalogue entries matching the
	// query and facets, plus the total match count.
	FullSearch(ctx context.Context, query string, filter manga.Filter, limit, offset int) ([]*manga.Manga, int, error)
}

// Enricher supplies the batch lookups used to hydrate a result page.
// The manga repository satisfies it.
type Enricher interface {
	GenresForManga(ctx context.Context, mangaIDs []int) (map[int][]genre.Genre, error)
	LatestChaptersForManga(ctx context.Context, mangaIDs []int, perManga int) (map[int][]manga.ChapterSummary, error)
}
