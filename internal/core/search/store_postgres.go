// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	// Registers the "postgres" dialect ($n placeholders).
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangafire/mangafire/internal/core/manga"
	"github.com/mangafire/mangafire/internal/platform/constants"
	"github.com/mangafire/mangafire/internal/platform/database/schema"
	"github.com/mangafire/mangafire/internal/platform/dberr"
)

var dialect = goqu.Dialect("postgres")

// similarityFloor is the trigram score below which a fuzzy hit is noise.
const similarityFloor = 0.3

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed search store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
Autocomplete resolves a partial title to a short suggestion list.

Description: Three match strategies are OR-combined. Trigram similarity
catches title typos, prefix ILIKE catches the common type-ahead case, and
the full-text index catches hits in alternative titles, author, artist,
and description. Prefix hits always rank above fuzzy hits; within each
group higher similarity wins. The similarity score, publication status,
and latest chapter number ride along for the suggestion dropdown.
*/
func (repository *postgresRepository) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {

	m := schema.Manga
	c := schema.Chapter

	sql := fmt.Sprintf(`
		SELECT
			%s, %s, %s, %s, %s,
			similarity(%s, $1) AS similarity,
			(SELECT %s FROM %s WHERE %s = %s.%s ORDER BY %s DESC LIMIT 1) AS latest_chapter
		FROM %s
		WHERE similarity(%s, $1) > %v
		   OR %s ILIKE $2
		   OR %s @@ plainto_tsquery('simple', $1)
		ORDER BY
			CASE WHEN %s ILIKE $2 THEN 0 ELSE 1 END,
			similarity(%s, $1) DESC
		LIMIT $3
	`,
		m.ID, m.Title, m.Slug, m.CoverImage, m.Status,
		m.Title,
		c.Number, c.Table, c.MangaID, m.Table, m.ID, c.CreatedAt,
		m.Table,
		m.Title, similarityFloor,
		m.Title,
		m.SearchVector,
		m.Title,
		m.Title,
	)

	prefixPattern := escapeLike(query) + "%"

	rows, err := repository.pool.Query(ctx, sql, query, prefixPattern, constants.AutocompleteLimit)
	if err != nil {
		return nil, dberr.Wrap(err, "autocomplete")
	}
	defer rows.Close()

	suggestions := []Suggestion{}
	for rows.Next() {
		var suggestion Suggestion
		err := rows.Scan(
			&suggestion.ID,
			&suggestion.Title,
			&suggestion.Slug,
			&suggestion.CoverImage,
			&suggestion.Status,
			&suggestion.Similarity,
			&suggestion.LatestChapter,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_suggestion")
		}
		suggestions = append(suggestions, suggestion)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_suggestions")
	}

	return suggestions, nil
}

/*
FullSearch executes a ranked, faceted search over the full-text index.

Description: The caller's catalogue facets render into the same predicate
slice used by regular discovery, with the full-text match appended, so both
the page query and the count query see identical conditions. Ranking uses
ts_rank with length normalization (flag 8) so long descriptions do not
drown out short ones.
*/
func (repository *postgresRepository) FullSearch(ctx context.Context, query string, filter manga.Filter, limit, offset int) ([]*manga.Manga, int, error) {

	searchColumn := goqu.I(schema.Manga.Table + "." + schema.Manga.SearchVector)

	expressions := filter.Expressions()
	expressions = append(expressions, goqu.L("? @@ plainto_tsquery('simple', ?)", searchColumn, query))

	rank := goqu.L("ts_rank(?, plainto_tsquery('simple', ?), 8)", searchColumn, query)

	// ── 1. Page query ─────────────────────────────────────────────────────
	pageSQL, pageArgs, err := dialect.From(schema.Manga.Table).
		Select(resultColumns()...).
		Where(expressions...).
		Order(rank.Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "build_full_search")
	}

	rows, err := repository.pool.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "full_search")
	}
	defer rows.Close()

	items := make([]*manga.Manga, 0, limit)
	for rows.Next() {
		m := &manga.Manga{}
		err := rows.Scan(
			&m.ID, &m.Title, &m.Slug, &m.AlternativeTitles, &m.Description, &m.Author,
			&m.Artist, &m.CoverImage, &m.Status, &m.Type, &m.Language, &m.Rating,
			&m.Views, &m.ReleaseYear, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_search_result")
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
		return nil, 0, dberr.Wrap(err, "build_full_search_count")
	}

	var total int
	if err := repository.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_full_search")
	}

	return items, total, nil
}

// resultColumns is the projection for a search result page.
func resultColumns() []interface{} {
	t := schema.Manga
	return []interface{}{
		t.ID, t.Title, t.Slug, t.AlternativeTitles, t.Description, t.Author,
		t.Artist, t.CoverImage, t.Status, t.Type, t.Language, t.Rating,
		t.Views, t.ReleaseYear, t.CreatedAt, t.UpdatedAt,
	}
}

// escapeLike neutralizes LIKE wildcards in user input.
func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `%`, `\%`)
	return strings.ReplaceAll(value, `_`, `\_`)
}
