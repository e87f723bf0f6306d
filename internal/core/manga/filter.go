// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/mangafire/mangafire/internal/platform/constants"
	"github.com/mangafire/mangafire/internal/platform/database/schema"
)

// Filter holds the discovery criteria parsed from the query string.
//
// Zero values mean "not filtered". The struct is translated into SQL
// predicates by [Filter.Expressions]; it never touches the database itself,
// which keeps the translation unit-testable.
type Filter struct {
	// Status filters by exact lifecycle state.
	Status Status
	// Type filters by exact publication format.
	Type Type
	// Search is a case-insensitive substring match against the title.
	Search string
	// Years holds raw year tokens: exact years ("1999") or decades ("1990s").
	Years []string
	// MinChapters keeps only series with at least this many chapters.
	MinChapters int
	// GenreID keeps only series carrying this genre.
	GenreID int
	// ExcludeGenreIDs drops series carrying any of these genres.
	ExcludeGenreIDs []int
}

var (
	exactYearRegex = regexp.MustCompile(`^\d{4}$`)
	decadeRegex    = regexp.MustCompile(`^(\d{3})0s$`)
)

// Expressions translates the filter into an ordered predicate list.
//
// The same slice feeds both the page query and the count query, so the two
// can never disagree about which rows match. Predicates are appended in a
// fixed order to keep generated SQL stable for caching and testing.
func (filter Filter) Expressions() []goqu.Expression {
	expressions := make([]goqu.Expression, 0, 7)

	// ── 1. Exact enum matches ─────────────────────────────────────────────
	if filter.Status != "" {
		expressions = append(expressions, mangaCol(schema.Manga.Status).Eq(string(filter.Status)))
	}
	if filter.Type != "" {
		expressions = append(expressions, mangaCol(schema.Manga.Type).Eq(string(filter.Type)))
	}

	// ── 2. Title substring search ─────────────────────────────────────────
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		expressions = append(expressions, mangaCol(schema.Manga.Title).ILike(pattern))
	}

	// ── 3. Year tokens (exact + decades, OR-combined) ─────────────────────
	if yearExpr := yearExpressions(filter.Years); yearExpr != nil {
		expressions = append(expressions, yearExpr)
	}

	// ── 4. Minimum chapter count (correlated subquery) ────────────────────
	if filter.MinChapters > 0 {
		expressions = append(expressions, goqu.L(
			fmt.Sprintf("(SELECT COUNT(*) FROM %s WHERE %s.%s = %s.%s) >= ?",
				schema.Chapter.Table,
				schema.Chapter.Table, schema.Chapter.MangaID,
				schema.Manga.Table, schema.Manga.ID),
			filter.MinChapters,
		))
	}

	// ── 5. Genre inclusion ────────────────────────────────────────────────
	if filter.GenreID > 0 {
		include := goqu.From(schema.MangaGenre.Table).
			Select(schema.MangaGenre.MangaID).
			Where(goqu.C(schema.MangaGenre.GenreID).Eq(filter.GenreID))
		expressions = append(expressions, mangaCol(schema.Manga.ID).In(include))
	}

	// ── 6. Genre exclusion ────────────────────────────────────────────────
	if excluded := dedupeAndCap(filter.ExcludeGenreIDs, constants.MaxExcludedGenres); len(excluded) > 0 {
		exclude := goqu.From(schema.MangaGenre.Table).
			Select(schema.MangaGenre.MangaID).
			Where(goqu.C(schema.MangaGenre.GenreID).In(excluded))
		expressions = append(expressions, mangaCol(schema.Manga.ID).NotIn(exclude))
	}

	return expressions
}

// yearExpressions parses raw year tokens into a single OR expression.
//
// Accepted forms:
//   - "1999": exact release year
//   - "1990s": the decade 1990-1999
//
// Malformed tokens are dropped silently; if nothing survives, the whole
// year criterion is skipped rather than matching zero rows.
func yearExpressions(tokens []string) goqu.Expression {
	var alternatives []goqu.Expression

	for _, token := range tokens {
		token = strings.TrimSpace(token)

		switch {
		case exactYearRegex.MatchString(token):
			year, _ := strconv.Atoi(token)
			alternatives = append(alternatives, mangaCol(schema.Manga.ReleaseYear).Eq(year))

		case decadeRegex.MatchString(token):
			start, _ := strconv.Atoi(decadeRegex.FindStringSubmatch(token)[1] + "0")
			alternatives = append(alternatives,
				mangaCol(schema.Manga.ReleaseYear).Between(goqu.Range(start, start+9)))
		}
	}

	if len(alternatives) == 0 {
		return nil
	}
	if len(alternatives) == 1 {
		return alternatives[0]
	}
	return goqu.Or(alternatives...)
}

// escapeLike neutralizes LIKE wildcards in user input so a search for "100%"
// matches the literal text instead of everything.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// dedupeAndCap removes duplicate IDs, preserving first-seen order, and
// truncates the result to max entries.
func dedupeAndCap(ids []int, max int) []int {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[int]struct{}, len(ids))
	result := make([]int, 0, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)

		if len(result) == max {
			break
		}
	}

	return result
}

// mangaCol returns a qualified identifier for a manga column.
func mangaCol(column string) exp.IdentifierExpression {
	return goqu.I(schema.Manga.Table + "." + column)
}
