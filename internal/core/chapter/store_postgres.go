// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package chapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangafire/mangafire/internal/platform/database/schema"
	"github.com/mangafire/mangafire/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// chapterColumns is the scan order shared by every chapter query.
func chapterColumns(prefix string) string {
	columns := []string{
		schema.Chapter.ID,
		schema.Chapter.MangaID,
		schema.Chapter.VolumeID,
		schema.Chapter.Number,
		schema.Chapter.Title,
		schema.Chapter.Slug,
		schema.Chapter.Language,
		schema.Chapter.PageCount,
		schema.Chapter.CreatedAt,
		schema.Chapter.UpdatedAt,
	}
	if prefix != "" {
		for i, column := range columns {
			columns[i] = prefix + "." + column
		}
	}
	return strings.Join(columns, ", ")
}

func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	err := row.Scan(
		&chapter.ID,
		&chapter.MangaID,
		&chapter.VolumeID,
		&chapter.Number,
		&chapter.Title,
		&chapter.Slug,
		&chapter.Language,
		&chapter.PageCount,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

/*
ListByManga retrieves one page of a series' chapters in reading order.

Description: The number column holds text; the ::numeric cast keeps "2"
before "10" and fractional releases in their natural position.
*/
func (repository *postgresRepository) ListByManga(ctx context.Context, mangaID int, language string, limit, offset int) ([]*Chapter, int, error) {

	// ── 1. Query construction with optional language predicate ────────────
	var conditions strings.Builder
	args := []any{mangaID}

	fmt.Fprintf(&conditions, "%s = $1", schema.Chapter.MangaID)
	if language != "" {
		args = append(args, language)
		fmt.Fprintf(&conditions, " AND %s = $%d", schema.Chapter.Language, len(args))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s::numeric ASC
		LIMIT $%d OFFSET $%d
	`,
		chapterColumns(""),
		schema.Chapter.Table,
		conditions.String(),
		schema.Chapter.Number,
		len(args)+1, len(args)+2,
	)

	// ── 2. Page query ──────────────────────────────────────────────────────
	rows, err := repository.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_chapters")
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_chapter")
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_chapters")
	}

	// ── 3. Count query over the same predicates ────────────────────────────
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`,
		schema.Chapter.Table, conditions.String())

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_chapters")
	}

	return chapters, total, nil
}

// FindByNumber returns a chapter by its number within a series, optionally
// narrowed to a language.
func (repository *postgresRepository) FindByNumber(ctx context.Context, mangaID int, number, language string) (*Chapter, error) {

	args := []any{mangaID, number}
	languagePredicate := ""
	if language != "" {
		args = append(args, language)
		languagePredicate = fmt.Sprintf(" AND %s = $3", schema.Chapter.Language)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2%s
		ORDER BY %s ASC
		LIMIT 1
	`,
		chapterColumns(""),
		schema.Chapter.Table,
		schema.Chapter.MangaID,
		schema.Chapter.Number,
		languagePredicate,
		schema.Chapter.Language,
	)

	chapter, err := scanChapter(repository.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "find_chapter_by_number")
	}

	return chapter, nil
}

// PagesForChapter returns a chapter's pages in reading order.
func (repository *postgresRepository) PagesForChapter(ctx context.Context, chapterID int) ([]Page, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.ChapterPage.ID, schema.ChapterPage.PageNumber, schema.ChapterPage.ImageURL,
		schema.ChapterPage.Width, schema.ChapterPage.Height,
		schema.ChapterPage.Table,
		schema.ChapterPage.ChapterID,
		schema.ChapterPage.PageNumber,
	)

	rows, err := repository.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapter_pages")
	}
	defer rows.Close()

	pages := []Page{}
	for rows.Next() {
		var page Page
		if err := rows.Scan(&page.ID, &page.PageNumber, &page.ImageURL, &page.Width, &page.Height); err != nil {
			return nil, dberr.Wrap(err, "scan_chapter_page")
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_chapter_pages")
	}

	return pages, nil
}

/*
Neighbors resolves the previous and next chapter numbers around the given
number, comparing numerically. A missing neighbor maps to nil rather than
an error so the reader UI can render the edge of a series.
*/
func (repository *postgresRepository) Neighbors(ctx context.Context, mangaID int, number, language string) (Navigation, error) {

	var navigation Navigation

	prev, err := repository.adjacentNumber(ctx, mangaID, number, language, "<", "DESC")
	if err != nil {
		return navigation, err
	}
	next, err := repository.adjacentNumber(ctx, mangaID, number, language, ">", "ASC")
	if err != nil {
		return navigation, err
	}

	navigation.Prev = prev
	navigation.Next = next
	return navigation, nil
}

// adjacentNumber finds the closest chapter number on one side of the pivot.
func (repository *postgresRepository) adjacentNumber(ctx context.Context, mangaID int, number, language, comparator, direction string) (*string, error) {

	args := []any{mangaID, number}
	languagePredicate := ""
	if language != "" {
		args = append(args, language)
		languagePredicate = fmt.Sprintf(" AND %s = $3", schema.Chapter.Language)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s::numeric %s $2::numeric%s
		ORDER BY %s::numeric %s
		LIMIT 1
	`,
		schema.Chapter.Number,
		schema.Chapter.Table,
		schema.Chapter.MangaID,
		schema.Chapter.Number, comparator,
		languagePredicate,
		schema.Chapter.Number, direction,
	)

	var neighbor string
	err := repository.pool.QueryRow(ctx, query, args...).Scan(&neighbor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find_adjacent_chapter")
	}

	return &neighbor, nil
}

/*
Create persists a chapter together with its pages in one transaction.

Description: The chapter row and its page rows either all land or none do.
The page count is derived from the submitted pages, never trusted from input.
*/
func (repository *postgresRepository) Create(ctx context.Context, chapter *Chapter, pages []PageInput) error {

	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_create_chapter")
	}
	defer tx.Rollback(ctx)

	// ── 1. Chapter row ─────────────────────────────────────────────────────
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s
	`,
		schema.Chapter.Table,
		schema.Chapter.MangaID, schema.Chapter.VolumeID, schema.Chapter.Number,
		schema.Chapter.Title, schema.Chapter.Slug, schema.Chapter.Language, schema.Chapter.PageCount,
		schema.Chapter.ID, schema.Chapter.CreatedAt, schema.Chapter.UpdatedAt,
	)

	err = tx.QueryRow(ctx, query,
		chapter.MangaID,
		chapter.VolumeID,
		chapter.Number,
		chapter.Title,
		chapter.Slug,
		chapter.Language,
		len(pages),
	).Scan(&chapter.ID, &chapter.CreatedAt, &chapter.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_chapter")
	}
	chapter.PageCount = len(pages)

	// ── 2. Page rows via pipelined batch ───────────────────────────────────
	if err := insertPages(ctx, tx, chapter.ID, pages); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_create_chapter")
	}

	return nil
}

// Update overwrites a chapter's mutable metadata.
func (repository *postgresRepository) Update(ctx context.Context, chapter *Chapter) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6
	`,
		schema.Chapter.Table,
		schema.Chapter.Number, schema.Chapter.Title, schema.Chapter.Slug,
		schema.Chapter.Language, schema.Chapter.VolumeID, schema.Chapter.UpdatedAt,
		schema.Chapter.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		chapter.Number,
		chapter.Title,
		chapter.Slug,
		chapter.Language,
		chapter.VolumeID,
		chapter.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_chapter")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Delete removes a chapter row. Pages cascade at the database level.
func (repository *postgresRepository) Delete(ctx context.Context, chapterID int) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Chapter.Table, schema.Chapter.ID)

	result, err := repository.pool.Exec(ctx, query, chapterID)
	if err != nil {
		return dberr.Wrap(err, "delete_chapter")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
ReplacePages swaps a chapter's full page set inside one transaction.

Description: Delete, re-insert, and page count update commit together, so a
concurrent reader sees either the old set or the new set, never a mix.
*/
func (repository *postgresRepository) ReplacePages(ctx context.Context, chapterID int, pages []PageInput) error {

	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_replace_pages")
	}
	defer tx.Rollback(ctx)

	// ── 1. Drop the existing set ───────────────────────────────────────────
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ChapterPage.Table, schema.ChapterPage.ChapterID)
	if _, err := tx.Exec(ctx, deleteQuery, chapterID); err != nil {
		return dberr.Wrap(err, "delete_chapter_pages")
	}

	// ── 2. Insert the replacement set ──────────────────────────────────────
	if err := insertPages(ctx, tx, chapterID, pages); err != nil {
		return err
	}

	// ── 3. Sync the denormalized page count ────────────────────────────────
	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		schema.Chapter.Table, schema.Chapter.PageCount, schema.Chapter.UpdatedAt, schema.Chapter.ID)

	result, err := tx.Exec(ctx, updateQuery, len(pages), chapterID)
	if err != nil {
		return dberr.Wrap(err, "update_page_count")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_replace_pages")
	}

	return nil
}

// insertPages bulk-inserts page rows through a pipelined batch. Page numbers
// are stored as submitted; the service guarantees they run 0..n-1.
func insertPages(ctx context.Context, tx pgx.Tx, chapterID int, pages []PageInput) error {
	if len(pages) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`, schema.ChapterPage.Table,
		schema.ChapterPage.ChapterID, schema.ChapterPage.PageNumber,
		schema.ChapterPage.ImageURL, schema.ChapterPage.Width, schema.ChapterPage.Height)

	batch := &pgx.Batch{}
	for _, page := range pages {
		batch.Queue(insertQuery, chapterID, page.PageNumber, page.ImageURL, page.Width, page.Height)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range pages {
		if _, err := results.Exec(); err != nil {
			return dberr.Wrap(err, "insert_chapter_page")
		}
	}

	return results.Close()
}
