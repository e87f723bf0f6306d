// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

/*
Package search implements catalogue text search in two modes.

# Modes

  - Autocomplete: A short, latency-sensitive suggestion list driven by
    trigram similarity, prefix matching, and the full-text index. Results
    are capped at a fixed size and skip pagination entirely.
  - Full: A ranked, paginated result page over the full-text index that
    honors the same catalogue facets as regular discovery.

A blank query short-circuits both modes without touching storage.
*/
package search

import "github.com/mangafire/mangafire/internal/core/manga"

// Mode selects the search behavior.
type Mode string

const (
	ModeAutocomplete Mode = "autocomplete"
	ModeFull         Mode = "full"
)

// IsValid reports whether the mode is supported.
func (mode Mode) IsValid() bool {
	return mode == ModeAutocomplete || mode == ModeFull
}

// Params carries a normalized search request.
type Params struct {
	Query  string
	Mode   Mode
	Filter manga.Filter
}

// Suggestion is a lightweight autocomplete hit. Similarity carries the
// trigram score against the query so clients can weigh typo matches.
type Suggestion struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	CoverImage    *string      `json:"coverImage"`
	Status        manga.Status `json:"status"`
	Similarity    float64      `json:"similarity"`
	LatestChapter *string      `json:"latestChapter"`
}

const (
	FieldQuery = "q"
	FieldMode  = "mode"
)
