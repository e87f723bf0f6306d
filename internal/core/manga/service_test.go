// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangafire/mangafire/internal/core/genre"
)

// fakeRepository is an in-memory Repository double that records batch-query
// traffic, so tests can pin the enrichment query budget.
type fakeRepository struct {
	listItems []*Manga
	listTotal int
	listErr   error

	bySlug map[string]*Manga

	genresByManga   map[int][]genre.Genre
	chaptersByManga map[int][]ChapterSummary

	genreBatchCalls   int
	chapterBatchCalls int
	lastGenreBatchIDs []int
	viewIncrements    []int
	incrementErr      error

	lastFilter Filter
	lastSortBy string
	lastOrder  string

	created *Manga
	updated *Manga
	deleted []int
}

func (f *fakeRepository) List(ctx context.Context, filter Filter, sortBy, order string, limit, offset int) ([]*Manga, int, error) {
	f.lastFilter = filter
	f.lastSortBy = sortBy
	f.lastOrder = order
	return f.listItems, f.listTotal, f.listErr
}

func (f *fakeRepository) FindByID(ctx context.Context, id int) (*Manga, error) {
	for _, m := range f.bySlug {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRepository) FindBySlug(ctx context.Context, slug string) (*Manga, error) {
	if m, ok := f.bySlug[slug]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeRepository) Create(ctx context.Context, m *Manga) error {
	m.ID = 101
	f.created = m
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, m *Manga) error {
	f.updated = m
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) IncrementViews(ctx context.Context, id int) error {
	f.viewIncrements = append(f.viewIncrements, id)
	return f.incrementErr
}

func (f *fakeRepository) GenresForManga(ctx context.Context, mangaIDs []int) (map[int][]genre.Genre, error) {
	f.genreBatchCalls++
	f.lastGenreBatchIDs = mangaIDs
	return f.genresByManga, nil
}

func (f *fakeRepository) LatestChaptersForManga(ctx context.Context, mangaIDs []int, perManga int) (map[int][]ChapterSummary, error) {
	f.chapterBatchCalls++
	return f.chaptersByManga, nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, slog.Default())
}

/*
TestListManga_EnrichmentQueryBudget verifies that a non-empty page costs
exactly two batch queries, covering every item ID at once.
*/
func TestListManga_EnrichmentQueryBudget(t *testing.T) {
	repo := &fakeRepository{
		listItems: []*Manga{{ID: 1, Title: "Berserk"}, {ID: 2, Title: "Monster"}, {ID: 3, Title: "Vinland Saga"}},
		listTotal: 3,
		genresByManga: map[int][]genre.Genre{
			1: {{ID: 10, Name: "Action"}},
		},
		chaptersByManga: map[int][]ChapterSummary{
			2: {{ID: 55, Number: "12.5"}},
		},
	}
	service := newTestService(repo)

	items, total, err := service.ListManga(context.Background(), Filter{}, "", "", 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	assert.Equal(t, 1, repo.genreBatchCalls)
	assert.Equal(t, 1, repo.chapterBatchCalls)
	assert.Equal(t, []int{1, 2, 3}, repo.lastGenreBatchIDs)

	// Hits get their payload, misses get empty arrays, never nil.
	assert.Len(t, items[0].Genres, 1)
	assert.NotNil(t, items[0].LatestChapters)
	assert.Empty(t, items[0].LatestChapters)
	assert.Len(t, items[1].LatestChapters, 1)
	assert.NotNil(t, items[2].Genres)
}

/*
TestListManga_EmptyPageSkipsEnrichment verifies the empty page short-circuit:
zero additional queries.
*/
func TestListManga_EmptyPageSkipsEnrichment(t *testing.T) {
	repo := &fakeRepository{listItems: []*Manga{}, listTotal: 0}
	service := newTestService(repo)

	items, total, err := service.ListManga(context.Background(), Filter{}, "", "", 20, 0)
	require.NoError(t, err)

	assert.Empty(t, items)
	assert.Zero(t, total)
	assert.Zero(t, repo.genreBatchCalls)
	assert.Zero(t, repo.chapterBatchCalls)
}

/*
TestListManga_RejectsUnknownEnums verifies that invalid status or type values
fail validation before any storage access.
*/
func TestListManga_RejectsUnknownEnums(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	_, _, err := service.ListManga(context.Background(), Filter{Status: "paused"}, "", "", 20, 0)
	assert.Error(t, err)

	_, _, err = service.ListManga(context.Background(), Filter{Type: "webtoon"}, "", "", 20, 0)
	assert.Error(t, err)

	assert.Zero(t, repo.genreBatchCalls)
}

/*
TestGetManga_IncrementsViews verifies the detail fetch bumps the counter and
that a failed bump never fails the read.
*/
func TestGetManga_IncrementsViews(t *testing.T) {
	repo := &fakeRepository{
		bySlug: map[string]*Manga{
			"berserk": {ID: 9, Title: "Berserk", Slug: "berserk"},
		},
		genresByManga: map[int][]genre.Genre{9: {{ID: 1, Name: "Seinen"}}},
	}
	service := newTestService(repo)

	m, err := service.GetManga(context.Background(), "berserk")
	require.NoError(t, err)
	assert.Equal(t, []int{9}, repo.viewIncrements)
	assert.Len(t, m.Genres, 1)

	// A failing increment is logged, not surfaced.
	repo.incrementErr = errors.New("db down")
	m, err = service.GetManga(context.Background(), "berserk")
	require.NoError(t, err)
	assert.Equal(t, "Berserk", m.Title)
}

/*
TestCreateManga_GeneratesSlug verifies slug derivation and validation.
*/
func TestCreateManga_GeneratesSlug(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	m := &Manga{Title: "Attack on Titan!", Status: StatusCompleted, Type: TypeManga}
	require.NoError(t, service.CreateManga(context.Background(), m))

	assert.Equal(t, "attack-on-titan", m.Slug)
	assert.Equal(t, 101, m.ID)
	require.NotNil(t, repo.created)
}

/*
TestCreateManga_LanguageHandling verifies the "en" fallback and the enum
check for explicit values.
*/
func TestCreateManga_LanguageHandling(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	m := &Manga{Title: "Solo Leveling", Status: StatusCompleted, Type: TypeManhwa}
	require.NoError(t, service.CreateManga(context.Background(), m))
	assert.Equal(t, LanguageEN, m.Language)

	bad := &Manga{Title: "X", Status: StatusOngoing, Type: TypeManga, Language: "fr"}
	assert.Error(t, service.CreateManga(context.Background(), bad))
}

/*
TestCreateManga_RequiresCoreFields verifies the required metadata rules.
*/
func TestCreateManga_RequiresCoreFields(t *testing.T) {
	service := newTestService(&fakeRepository{})

	tests := []struct {
		name  string
		input *Manga
	}{
		{"missing_title", &Manga{Status: StatusOngoing, Type: TypeManga}},
		{"missing_status", &Manga{Title: "X", Type: TypeManga}},
		{"bad_status", &Manga{Title: "X", Status: "paused", Type: TypeManga}},
		{"bad_type", &Manga{Title: "X", Status: StatusOngoing, Type: "webtoon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, service.CreateManga(context.Background(), tt.input))
		})
	}
}

/*
TestUpdateManga_PartialPatch verifies overlay semantics: untouched fields
survive, nil GenreIDs leaves associations alone.
*/
func TestUpdateManga_PartialPatch(t *testing.T) {
	description := "A dark tale."
	repo := &fakeRepository{
		bySlug: map[string]*Manga{
			"berserk": {
				ID: 9, Title: "Berserk", Slug: "berserk",
				Status: StatusOngoing, Type: TypeManga, Description: &description,
			},
		},
	}
	service := newTestService(repo)

	updated, err := service.UpdateManga(context.Background(), "berserk", &Manga{Status: StatusCompleted})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, "Berserk", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, description, *updated.Description)
	assert.Nil(t, repo.updated.GenreIDs)
}

/*
TestUpdateManga_ReplacesAlternativeTitles verifies that a submitted list
replaces the stored one wholesale while a nil list leaves it untouched.
*/
func TestUpdateManga_ReplacesAlternativeTitles(t *testing.T) {
	repo := &fakeRepository{
		bySlug: map[string]*Manga{
			"berserk": {
				ID: 9, Title: "Berserk", Slug: "berserk",
				Status: StatusOngoing, Type: TypeManga, Language: LanguageEN,
				AlternativeTitles: []string{"Berserk: The Prototype"},
			},
		},
	}
	service := newTestService(repo)

	untouched, err := service.UpdateManga(context.Background(), "berserk", &Manga{Status: StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, []string{"Berserk: The Prototype"}, untouched.AlternativeTitles)

	replaced, err := service.UpdateManga(context.Background(), "berserk", &Manga{
		AlternativeTitles: []string{"Beruseruku", "Kenpuu Denki Berserk"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Beruseruku", "Kenpuu Denki Berserk"}, replaced.AlternativeTitles)
}
