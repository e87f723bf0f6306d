// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package genre

import "context"

// Repository defines the persistence contract for genre reference data.
type Repository interface {
	// ListGenres returns every genre ordered by name.
	ListGenres(ctx context.Context) ([]*Genre, error)

	// GetGenreByID returns a single genre or dberr.ErrNotFound.
	GetGenreByID(ctx context.Context, id int) (*Genre, error)
}
