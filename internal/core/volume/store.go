// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package volume

import "context"

// Repository defines the persistence contract for volumes.
type Repository interface {
	// ListByManga returns all volumes of a series in ascending number order.
	ListByManga(ctx context.Context, mangaID int) ([]*Volume, error)

	// FindByID returns a volume or dberr.ErrNotFound.
	FindByID(ctx context.Context, id int) (*Volume, error)

	// Create persists a new volume; the ID and timestamp are populated.
	Create(ctx context.Context, v *Volume) error

	// Update overwrites a volume's metadata.
	Update(ctx context.Context, v *Volume) error

	// Delete removes a volume. Chapters keep existing with a cleared
	// volume reference.
	Delete(ctx context.Context, id int) error
}
