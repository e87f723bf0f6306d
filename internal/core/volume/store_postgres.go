// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package volume

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangafire/mangafire/internal/platform/database/schema"
	"github.com/mangafire/mangafire/internal/platform/dberr"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed volume store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ListByManga returns a series' volumes in ascending number order.
func (repository *postgresRepository) ListByManga(ctx context.Context, mangaID int) ([]*Volume, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.Volume.ID, schema.Volume.MangaID, schema.Volume.Number,
		schema.Volume.Title, schema.Volume.CoverImage, schema.Volume.CreatedAt,
		schema.Volume.Table,
		schema.Volume.MangaID,
		schema.Volume.Number,
	)

	rows, err := repository.pool.Query(ctx, query, mangaID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_volumes")
	}
	defer rows.Close()

	volumes := []*Volume{}
	for rows.Next() {
		var volume Volume
		err := rows.Scan(
			&volume.ID,
			&volume.MangaID,
			&volume.Number,
			&volume.Title,
			&volume.CoverImage,
			&volume.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_volume")
		}
		volumes = append(volumes, &volume)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_volumes")
	}

	return volumes, nil
}

// FindByID returns a single volume.
func (repository *postgresRepository) FindByID(ctx context.Context, id int) (*Volume, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Volume.ID, schema.Volume.MangaID, schema.Volume.Number,
		schema.Volume.Title, schema.Volume.CoverImage, schema.Volume.CreatedAt,
		schema.Volume.Table,
		schema.Volume.ID,
	)

	var volume Volume
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&volume.ID,
		&volume.MangaID,
		&volume.Number,
		&volume.Title,
		&volume.CoverImage,
		&volume.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_volume_by_id")
	}

	return &volume, nil
}

// Create persists a new volume. Duplicate numbers within a series surface
// as a conflict through the unique constraint.
func (repository *postgresRepository) Create(ctx context.Context, volume *Volume) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.Volume.Table,
		schema.Volume.MangaID, schema.Volume.Number, schema.Volume.Title, schema.Volume.CoverImage,
		schema.Volume.ID, schema.Volume.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		volume.MangaID,
		volume.Number,
		volume.Title,
		volume.CoverImage,
	).Scan(&volume.ID, &volume.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_volume")
	}

	return nil
}

// Update overwrites a volume's metadata.
func (repository *postgresRepository) Update(ctx context.Context, volume *Volume) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3
		WHERE %s = $4
	`,
		schema.Volume.Table,
		schema.Volume.Number, schema.Volume.Title, schema.Volume.CoverImage,
		schema.Volume.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		volume.Number,
		volume.Title,
		volume.CoverImage,
		volume.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_volume")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Delete removes a volume row. Chapters referencing it fall back to a null
// volume via the foreign key's SET NULL action.
func (repository *postgresRepository) Delete(ctx context.Context, id int) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Volume.Table, schema.Volume.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_volume")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
