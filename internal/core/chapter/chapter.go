// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

/*
Package chapter implements per-series reading content: chapters, their page
images, and numeric navigation between releases.

# Numbers Are Text

Chapter numbers are stored as text ("12", "12.5") and cast to numeric inside
queries for ordering and neighbor lookups. Lexicographic ordering would put
"10" before "2"; the cast keeps reading order correct while preserving
fractional releases.
*/
package chapter

import "time"

// Chapter is a single release of a series in one language.
type Chapter struct {
	ID        int       `json:"id"`
	MangaID   int       `json:"mangaId"`
	VolumeID  *int      `json:"volumeId"`
	Number    string    `json:"number"`
	Title     *string   `json:"title"`
	Slug      string    `json:"slug"`
	Language  string    `json:"language"`
	PageCount int       `json:"pageCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Pages is populated only on detail reads.
	Pages []Page `json:"pages,omitempty"`
}

// Page is one image of a chapter. Page numbers are zero-based and
// contiguous within a chapter.
type Page struct {
	ID         int    `json:"id"`
	PageNumber int    `json:"pageNumber"`
	ImageURL   string `json:"imageUrl"`
	Width      *int   `json:"width"`
	Height     *int   `json:"height"`
}

// PageInput is the submitted form of a page for create and replace
// operations.
type PageInput struct {
	PageNumber int    `json:"pageNumber"`
	ImageURL   string `json:"imageUrl"`
	Width      *int   `json:"width"`
	Height     *int   `json:"height"`
}

// Navigation carries the neighboring chapter numbers for reader paging.
// A nil field means the edge of the series was reached.
type Navigation struct {
	Prev *string `json:"prevChapter"`
	Next *string `json:"nextChapter"`
}

// DefaultLanguage is applied when a release carries no explicit language.
const DefaultLanguage = "en"

// # JSON Field Identifiers

const (
	FieldNumber   = "number"
	FieldSlug     = "slug"
	FieldLanguage = "language"
	FieldPages    = "pages"
)
