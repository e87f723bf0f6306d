// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

/*
Package manga implements the catalogue domain: series metadata, dynamic
filtered discovery, and content management.

# Architecture

  - manga.go: Domain entities and enumerations.
  - filter.go: Pure translation of Filter criteria into SQL predicates.
  - sort.go: Whitelisted sort key resolution.
  - store.go / store_postgres.go: Persistence contract and pgx implementation.
  - service.go: Orchestration, validation, and result enrichment.
  - http.go: chi handlers.
*/
package manga

import (
	"time"

	"github.com/mangafire/mangafire/internal/core/genre"
)

// # Enumerations

// Status is the publication lifecycle state of a series.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether the status is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus, StatusCancelled:
		return true
	}
	return false
}

// Type is the publication format of a series.
type Type string

const (
	TypeManga     Type = "manga"
	TypeManhwa    Type = "manhwa"
	TypeManhua    Type = "manhua"
	TypeOneShot   Type = "one_shot"
	TypeDoujinshi Type = "doujinshi"
)

// IsValid reports whether the type is a known publication format.
func (t Type) IsValid() bool {
	switch t {
	case TypeManga, TypeManhwa, TypeManhua, TypeOneShot, TypeDoujinshi:
		return true
	}
	return false
}

// Language is the primary publication language of a series.
type Language string

const (
	LanguageEN Language = "en"
	LanguageJP Language = "jp"
	LanguageKO Language = "ko"
	LanguageZH Language = "zh"
)

// IsValid reports whether the language is in the supported set.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEN, LanguageJP, LanguageKO, LanguageZH:
		return true
	}
	return false
}

// # Entities

// Manga is the catalogue entry for a series.
type Manga struct {
	ID                int       `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	AlternativeTitles []string  `json:"alternativeTitles"`
	Description       *string   `json:"description"`
	Author            *string   `json:"author"`
	Artist            *string   `json:"artist"`
	CoverImage        *string   `json:"coverImage"`
	Status            Status    `json:"status"`
	Type              Type      `json:"type"`
	Language          Language  `json:"language"`
	Rating            float64   `json:"rating"`
	Views             int       `json:"views"`
	ReleaseYear       *int      `json:"releaseYear"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	// Enrichment payload, populated by the service layer.
	Genres         []genre.Genre    `json:"genres,omitempty"`
	LatestChapters []ChapterSummary `json:"latestChapters,omitempty"`

	// GenreIDs is write-only input for create/update operations.
	GenreIDs []int `json:"-"`
}

// ChapterSummary is the shallow chapter projection embedded in list items.
type ChapterSummary struct {
	ID        int       `json:"id"`
	Number    string    `json:"number"`
	Title     *string   `json:"title"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
}

// LatestChaptersPerManga is how many recent chapters a list item carries.
const LatestChaptersPerManga = 3

// # JSON Field Identifiers

const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldStatus      = "status"
	FieldType        = "type"
	FieldLanguage    = "language"
	FieldRating      = "rating"
	FieldReleaseYear = "releaseYear"
	FieldSort        = "sortBy"
	FieldOrder       = "sortOrder"
)
