// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

// Package genre provides the reference data for catalogue classification.
//
// Genres are flat, admin-curated labels (Action, Romance, Isekai) attached to
// manga through the manga_genres junction table.
package genre

// Genre is a single classification label.
type Genre struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// # JSON Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)
