// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package chapter

import "context"

// Repository defines the persistence contract for reading content.
type Repository interface {
	// ListByManga returns one page of a series' chapters in numeric reading
	// order, optionally restricted to a language, plus the total count.
	ListByManga(ctx context.Context, mangaID int, language string, limit, offset int) ([]*Chapter, int, error)

	// FindByNumber returns a chapter by its number, optionally restricted to
	// a language, or dberr.ErrNotFound.
	FindByNumber(ctx context.Context, mangaID int, number, language string) (*Chapter, error)

	// PagesForChapter returns a chapter's pages ordered by page number.
	PagesForChapter(ctx context.Context, chapterID int) ([]Page, error)

	// Neighbors returns the numerically closest chapter numbers on either
	// side of the given number within the same series and language scope.
	Neighbors(ctx context.Context, mangaID int, number, language string) (Navigation, error)

	// Create persists a chapter and its pages atomically. The entity's ID,
	// page count, and timestamps are populated on success.
	Create(ctx context.Context, ch *Chapter, pages []PageInput) error

	// Update overwrites a chapter's mutable metadata.
	Update(ctx context.Context, ch *Chapter) error

	// Delete removes a chapter; its pages cascade.
	Delete(ctx context.Context, chapterID int) error

	// ReplacePages swaps a chapter's entire page set and its page count in
	// one transaction. Readers never observe a half-replaced chapter.
	ReplacePages(ctx context.Context, chapterID int, pages []PageInput) error
}
