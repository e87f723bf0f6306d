// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangafire/mangafire/internal/platform/database/schema"
)

// assertArgValues compares bound arguments by value, ignoring the exact
// integer width the SQL builder chooses.
func assertArgValues(t *testing.T, expected, actual []interface{}) {
	t.Helper()

	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.EqualValues(t, expected[i], actual[i])
	}
}

// renderWhere builds the discovery query for a filter and returns the
// prepared SQL plus its arguments. No database is involved.
func renderWhere(t *testing.T, filter Filter) (string, []interface{}) {
	t.Helper()

	sql, args, err := dialect.From(schema.Manga.Table).
		Select(schema.Manga.ID).
		Where(filter.Expressions()...).
		Prepared(true).
		ToSQL()
	require.NoError(t, err)

	return sql, args
}

/*
TestFilter_Empty verifies that a zero filter produces no predicates.
*/
func TestFilter_Empty(t *testing.T) {
	expressions := Filter{}.Expressions()
	assert.Empty(t, expressions)
}

/*
TestFilter_StatusAndType verifies exact enum equality predicates.
*/
func TestFilter_StatusAndType(t *testing.T) {
	sql, args := renderWhere(t, Filter{Status: StatusOngoing, Type: TypeManhwa})

	assert.Contains(t, sql, schema.Manga.Status)
	assert.Contains(t, sql, schema.Manga.Type)
	assertArgValues(t, []interface{}{"ongoing", "manhwa"}, args)
}

/*
TestFilter_SearchEscapesWildcards verifies that user input containing LIKE
wildcards matches literally instead of matching everything.
*/
func TestFilter_SearchEscapesWildcards(t *testing.T) {
	sql, args := renderWhere(t, Filter{Search: "100% _odd_ title"})

	assert.Contains(t, sql, "ILIKE")
	require.Len(t, args, 1)
	assert.Equal(t, `%100\% \_odd\_ title%`, args[0])
}

/*
TestFilter_YearTokens verifies exact years, decade tokens, OR combination,
and silent dropping of malformed tokens.
*/
func TestFilter_YearTokens(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		wantArgs []interface{}
		wantNone bool
	}{
		{"exact_year", []string{"1999"}, []interface{}{1999}, false},
		{"decade", []string{"1990s"}, []interface{}{1990, 1999}, false},
		{"mixed", []string{"2005", "1980s"}, []interface{}{2005, 1980, 1989}, false},
		{"malformed_dropped", []string{"19x9", "199", "nineties"}, nil, true},
		{"malformed_among_valid", []string{"banana", "2001"}, []interface{}{2001}, false},
		{"empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := Filter{Years: tt.tokens}

			if tt.wantNone {
				// A fully malformed year list must not constrain the query.
				assert.Empty(t, filter.Expressions())
				return
			}

			sql, args := renderWhere(t, filter)
			assert.Contains(t, sql, schema.Manga.ReleaseYear)
			assertArgValues(t, tt.wantArgs, args)
		})
	}
}

/*
TestFilter_MinChapters verifies the correlated chapter-count subquery.
*/
func TestFilter_MinChapters(t *testing.T) {
	sql, args := renderWhere(t, Filter{MinChapters: 10})

	assert.Contains(t, sql, "SELECT COUNT(*) FROM chapters")
	assertArgValues(t, []interface{}{10}, args)
}

/*
TestFilter_GenreInclusionAndExclusion verifies the junction subqueries.
*/
func TestFilter_GenreInclusionAndExclusion(t *testing.T) {
	sql, args := renderWhere(t, Filter{GenreID: 7, ExcludeGenreIDs: []int{3, 4}})

	assert.Contains(t, sql, schema.MangaGenre.Table)
	assert.Contains(t, sql, "IN")
	assert.Contains(t, sql, "NOT IN")
	assertArgValues(t, []interface{}{7, 3, 4}, args)
}

/*
TestFilter_ExcludeGenresDedupedAndCapped verifies that duplicate exclusions
collapse and the list is truncated to the platform cap.
*/
func TestFilter_ExcludeGenresDedupedAndCapped(t *testing.T) {
	deduped := dedupeAndCap([]int{5, 5, 6, 5, 6, 7}, 50)
	assert.Equal(t, []int{5, 6, 7}, deduped)

	oversized := make([]int, 0, 80)
	for i := 1; i <= 80; i++ {
		oversized = append(oversized, i)
	}
	capped := dedupeAndCap(oversized, 50)
	assert.Len(t, capped, 50)
	assert.Equal(t, 1, capped[0])
	assert.Equal(t, 50, capped[49])
}

/*
TestFilter_StablePredicateOrder verifies that the same filter always renders
identical SQL, so the page and count queries cannot disagree.
*/
func TestFilter_StablePredicateOrder(t *testing.T) {
	filter := Filter{
		Status:          StatusCompleted,
		Type:            TypeManga,
		Search:          "blade",
		Years:           []string{"2010s"},
		MinChapters:     5,
		GenreID:         2,
		ExcludeGenreIDs: []int{9},
	}

	firstSQL, firstArgs := renderWhere(t, filter)
	secondSQL, secondArgs := renderWhere(t, filter)

	assert.Equal(t, firstSQL, secondSQL)
	assert.Equal(t, firstArgs, secondArgs)
}
