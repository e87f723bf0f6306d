// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	// Registers the "postgres" dialect ($n placeholders).
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangafire/mangafire/internal/core/genre"
	"github.com/mangafire/mangafire/internal/platform/database/schema"
	"github.com/mangafire/mangafire/internal/platform/dberr"
)

var dialect = goqu.Dialect("postgres")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectColumns is the projection shared by every single/list read.
func selectColumns() []interface{} {
	t := schema.Manga
	return []interface{}{
		t.ID, t.Title, t.Slug, t.AlternativeTitles, t.Description, t.Author,
		t.Artist, t.CoverImage, t.Status, t.Type, t.Language, t.Rating,
		t.Views, t.ReleaseYear, t.CreatedAt, t.UpdatedAt,
	}
}

// scanManga reads one row of the standard projection.
func scanManga(row pgx.Row) (*Manga, error) {
	m := &Manga{}
	err := row.Scan(
		&m.ID, &m.Title, &m.Slug, &m.AlternativeTitles, &m.Description, &m.Author,
		&m.Artist, &m.CoverImage, &m.Status, &m.Type, &m.Language, &m.Rating,
		&m.Views, &m.ReleaseYear, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

/*
List executes the dynamic discovery query.

The filter is rendered once into a predicate slice which then feeds BOTH the
page query and the count query, so pagination metadata always agrees with the
rows returned. Query construction errors and execution errors both surface
unchanged to the caller (wrapped as AppErrors).
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, sortBy, order string, limit, offset int) ([]*Manga, int, error) {
	expressions := filter.Expressions()

	// ── 1. Page query ─────────────────────────────────────────────────────
	pageSQL, pageArgs, err := dialect.From(schema.Manga.Table).
		Select(selectColumns()...).
		Where(expressions...).
		Order(OrderExpression(sortBy, order)...).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_manga_list")
	}

	rows, err := repository.db.Query(context, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_manga")
	}
	defer rows.Close()

	items := make([]*Manga, 0, limit)
	for rows.Next() {
		m, err := scanManga(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_manga")
		}
		items = append(items, m)
	}
	rows.Close()

	// ── 2. Count query (same predicate slice) ─────────────────────────────
	countSQL, countArgs, err := dialect.From(schema.Manga.Table).
		Select(goqu.COUNT(goqu.Star())).
		Where(expressions...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_manga_count")
	}

	var total int
	if err := repository.db.QueryRow(context, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_manga")
	}

	return items, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Manga, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(), schema.Manga.Table, schema.Manga.ID)

	m, err := scanManga(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_manga_by_id")
	}
	return m, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Manga, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(), schema.Manga.Table, schema.Manga.Slug)

	m, err := scanManga(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find_manga_by_slug")
	}
	return m, nil
}

func (repository *PostgresRepository) Create(context context.Context, m *Manga) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_manga")
	}
	defer func() { _ = transaction.Rollback(context) }()

	t := schema.Manga
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s, %s, %s`,
		t.Table,
		t.Title, t.Slug, t.AlternativeTitles, t.Description, t.Author, t.Artist,
		t.CoverImage, t.Status, t.Type, t.Language, t.ReleaseYear,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		m.Title, m.Slug, m.AlternativeTitles, m.Description, m.Author, m.Artist,
		m.CoverImage, m.Status, m.Type, m.Language, m.ReleaseYear,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_manga")
	}

	if err := replaceGenres(context, transaction, m.ID, m.GenreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_manga")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, m *Manga) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_manga")
	}
	defer func() { _ = transaction.Rollback(context) }()

	t := schema.Manga
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = now()
		WHERE %s = $12
		RETURNING %s`,
		t.Table,
		t.Title, t.Slug, t.AlternativeTitles, t.Description, t.Author, t.Artist,
		t.CoverImage, t.Status, t.Type, t.Language, t.ReleaseYear, t.UpdatedAt,
		t.ID, t.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		m.Title, m.Slug, m.AlternativeTitles, m.Description, m.Author, m.Artist,
		m.CoverImage, m.Status, m.Type, m.Language, m.ReleaseYear, m.ID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_manga")
	}

	// nil means "leave associations untouched"; empty means "remove all".
	if m.GenreIDs != nil {
		if err := replaceGenres(context, transaction, m.ID, m.GenreIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_manga")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Manga.Table, schema.Manga.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_manga")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.Manga.Table, schema.Manga.Views, schema.Manga.Views, schema.Manga.ID)

	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "increment_manga_views")
	}
	return nil
}

/*
GenresForManga loads genres for a whole result page in one round trip.

Returns a map keyed by manga ID so the service layer can zip genres back
onto list items in memory.
*/
func (repository *PostgresRepository) GenresForManga(context context.Context, mangaIDs []int) (map[int][]genre.Genre, error) {
	result := make(map[int][]genre.Genre, len(mangaIDs))
	if len(mangaIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT mg.%s, g.%s, g.%s, g.%s
		FROM %s mg
		JOIN %s g ON mg.%s = g.%s
		WHERE mg.%s = ANY($1)
		ORDER BY g.%s ASC`,
		schema.MangaGenre.MangaID, schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug,
		schema.MangaGenre.Table, schema.Genre.Table,
		schema.MangaGenre.GenreID, schema.Genre.ID,
		schema.MangaGenre.MangaID, schema.Genre.Name,
	)

	rows, err := repository.db.Query(context, query, mangaIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "genres_for_manga")
	}
	defer rows.Close()

	for rows.Next() {
		var mangaID int
		g := genre.Genre{}
		if err := rows.Scan(&mangaID, &g.ID, &g.Name, &g.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_manga_genre")
		}
		result[mangaID] = append(result[mangaID], g)
	}

	return result, nil
}

/*
LatestChaptersForManga loads the most recent chapters for a whole result page
in one round trip, using a window function to cap the per-series count
database-side.
*/
func (repository *PostgresRepository) LatestChaptersForManga(context context.Context, mangaIDs []int, perManga int) (map[int][]ChapterSummary, error) {
	result := make(map[int][]ChapterSummary, len(mangaIDs))
	if len(mangaIDs) == 0 {
		return result, nil
	}

	c := schema.Chapter
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM (
			SELECT %s, %s, %s, %s, %s, %s,
			       ROW_NUMBER() OVER (PARTITION BY %s ORDER BY %s DESC) AS recency_rank
			FROM %s
			WHERE %s = ANY($1)
		) ranked
		WHERE recency_rank <= $2`,
		c.ID, c.MangaID, c.Number, c.Title, c.Language, c.CreatedAt,
		c.ID, c.MangaID, c.Number, c.Title, c.Language, c.CreatedAt,
		c.MangaID, c.CreatedAt,
		c.Table,
		c.MangaID,
	)

	rows, err := repository.db.Query(context, query, mangaIDs, perManga)
	if err != nil {
		return nil, dberr.Wrap(err, "latest_chapters_for_manga")
	}
	defer rows.Close()

	for rows.Next() {
		var mangaID int
		summary := ChapterSummary{}
		if err := rows.Scan(&summary.ID, &mangaID, &summary.Number, &summary.Title, &summary.Language, &summary.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_latest_chapter")
		}
		result[mangaID] = append(result[mangaID], summary)
	}

	return result, nil
}

// # Internal Helpers

// replaceGenres swaps a series' genre associations inside an open transaction:
// delete everything, then batch-insert the new set.
func replaceGenres(context context.Context, transaction pgx.Tx, mangaID int, genreIDs []int) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.MangaGenre.Table, schema.MangaGenre.MangaID)

	if _, err := transaction.Exec(context, deleteQuery, mangaID); err != nil {
		return dberr.Wrap(err, "clear_manga_genres")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.MangaGenre.Table, schema.MangaGenre.MangaID, schema.MangaGenre.GenreID)

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insertQuery, mangaID, genreID)
	}

	results := transaction.SendBatch(context, batch)
	defer func() { _ = results.Close() }()

	for range genreIDs {
		if _, err := results.Exec(); err != nil {
			return dberr.Wrap(err, "insert_manga_genre")
		}
	}

	return nil
}

// columnList renders the standard projection for fmt-built queries.
func columnList() string {
	return strings.Join(schema.Manga.Columns(), ", ")
}
