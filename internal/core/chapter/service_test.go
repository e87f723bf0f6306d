// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package chapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangafire/mangafire/internal/core/manga"
	"github.com/mangafire/mangafire/pkg/pointer"
)

// fakeSeries resolves slugs from an in-memory map.
type fakeSeries struct {
	bySlug map[string]*manga.Manga
}

func (f *fakeSeries) FindBySlug(ctx context.Context, slug string) (*manga.Manga, error) {
	if m, ok := f.bySlug[slug]; ok {
		return m, nil
	}
	return nil, errors.New("not found")
}

// fakeRepository is an in-memory Repository double.
type fakeRepository struct {
	byNumber map[string]*Chapter
	pages    map[int][]Page
	nav      Navigation

	created      *Chapter
	createdPages []PageInput
	updated      *Chapter
	deleted      []int
	replaced     map[int][]PageInput
}

func (f *fakeRepository) ListByManga(ctx context.Context, mangaID int, language string, limit, offset int) ([]*Chapter, int, error) {
	var chapters []*Chapter
	for _, ch := range f.byNumber {
		chapters = append(chapters, ch)
	}
	return chapters, len(chapters), nil
}

func (f *fakeRepository) FindByNumber(ctx context.Context, mangaID int, number, language string) (*Chapter, error) {
	if ch, ok := f.byNumber[number]; ok {
		copied := *ch
		return &copied, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeRepository) PagesForChapter(ctx context.Context, chapterID int) ([]Page, error) {
	return f.pages[chapterID], nil
}

func (f *fakeRepository) Neighbors(ctx context.Context, mangaID int, number, language string) (Navigation, error) {
	return f.nav, nil
}

func (f *fakeRepository) Create(ctx context.Context, ch *Chapter, pages []PageInput) error {
	ch.ID = 77
	ch.PageCount = len(pages)
	f.created = ch
	f.createdPages = pages
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, ch *Chapter) error {
	f.updated = ch
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, chapterID int) error {
	f.deleted = append(f.deleted, chapterID)
	return nil
}

func (f *fakeRepository) ReplacePages(ctx context.Context, chapterID int, pages []PageInput) error {
	if f.replaced == nil {
		f.replaced = map[int][]PageInput{}
	}
	f.replaced[chapterID] = pages
	return nil
}

// testPages builds a valid zero-based page set of the given size.
func testPages(count int) []PageInput {
	pages := make([]PageInput, count)
	for i := range pages {
		pages[i] = PageInput{
			PageNumber: i,
			ImageURL:   "https://cdn.mangafire.app/p/" + string(rune('a'+i)) + ".jpg",
		}
	}
	return pages
}

func newTestService(repo *fakeRepository) *Service {
	series := &fakeSeries{bySlug: map[string]*manga.Manga{
		"berserk": {ID: 9, Title: "Berserk", Slug: "berserk"},
	}}
	return NewService(repo, series, slog.Default())
}

/*
TestCreateChapter_DefaultsLanguage verifies the language fallback and the
derived page count.
*/
func TestCreateChapter_DefaultsLanguage(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	chapter := &Chapter{Number: "12.5", Slug: "chapter-12-5"}
	pages := testPages(2)
	require.NoError(t, service.CreateChapter(context.Background(), "berserk", chapter, pages))

	assert.Equal(t, DefaultLanguage, chapter.Language)
	assert.Equal(t, 9, chapter.MangaID)
	assert.Equal(t, 2, chapter.PageCount)
	assert.Equal(t, pages, repo.createdPages)
}

/*
TestCreateChapter_RejectsMalformedNumbers verifies the number format rule:
integers and single-decimal fractions only.
*/
func TestCreateChapter_RejectsMalformedNumbers(t *testing.T) {
	service := newTestService(&fakeRepository{})

	tests := []struct {
		name   string
		number string
	}{
		{"empty", ""},
		{"letters", "twelve"},
		{"trailing_dot", "12."},
		{"negative", "-3"},
		{"double_decimal", "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chapter := &Chapter{Number: tt.number, Slug: "chapter-x"}
			err := service.CreateChapter(context.Background(), "berserk", chapter, testPages(1))
			assert.Error(t, err)
		})
	}
}

/*
TestCreateChapter_RequiresSlug verifies that releases cannot be created
without a URL slug and that malformed slugs are rejected.
*/
func TestCreateChapter_RequiresSlug(t *testing.T) {
	service := newTestService(&fakeRepository{})

	for _, slug := range []string{"", "Chapter 12", "chapter_12"} {
		err := service.CreateChapter(context.Background(), "berserk", &Chapter{Number: "12", Slug: slug}, testPages(1))
		assert.Error(t, err, "slug %q should be rejected", slug)
	}
}

/*
TestCreateChapter_RejectsBrokenPageNumbering verifies the page set rules:
at least one page, numbered sequentially starting from 0.
*/
func TestCreateChapter_RejectsBrokenPageNumbering(t *testing.T) {
	service := newTestService(&fakeRepository{})

	tests := []struct {
		name  string
		pages []PageInput
	}{
		{"empty", nil},
		{"starts_at_one", []PageInput{
			{PageNumber: 1, ImageURL: "https://cdn.mangafire.app/p/a.jpg"},
		}},
		{"gap", []PageInput{
			{PageNumber: 0, ImageURL: "https://cdn.mangafire.app/p/a.jpg"},
			{PageNumber: 2, ImageURL: "https://cdn.mangafire.app/p/b.jpg"},
		}},
		{"duplicate", []PageInput{
			{PageNumber: 0, ImageURL: "https://cdn.mangafire.app/p/a.jpg"},
			{PageNumber: 0, ImageURL: "https://cdn.mangafire.app/p/b.jpg"},
		}},
		{"missing_url", []PageInput{
			{PageNumber: 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chapter := &Chapter{Number: "12", Slug: "chapter-12"}
			err := service.CreateChapter(context.Background(), "berserk", chapter, tt.pages)
			assert.Error(t, err)
		})
	}
}

/*
TestCreateChapter_KeepsSubmittedNumbering verifies that page numbers are
stored exactly as submitted, zero-based, including out-of-order submissions.
*/
func TestCreateChapter_KeepsSubmittedNumbering(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	pages := []PageInput{
		{PageNumber: 1, ImageURL: "https://cdn.mangafire.app/p/b.jpg"},
		{PageNumber: 0, ImageURL: "https://cdn.mangafire.app/p/a.jpg"},
	}
	chapter := &Chapter{Number: "12", Slug: "chapter-12"}
	require.NoError(t, service.CreateChapter(context.Background(), "berserk", chapter, pages))

	require.Len(t, repo.createdPages, 2)
	assert.Equal(t, 1, repo.createdPages[0].PageNumber)
	assert.Equal(t, 0, repo.createdPages[1].PageNumber)
}

/*
TestGetChapter_AssemblesDetail verifies that pages and neighbor numbers are
attached to the detail result.
*/
func TestGetChapter_AssemblesDetail(t *testing.T) {
	prev, next := "11", "12.5"
	repo := &fakeRepository{
		byNumber: map[string]*Chapter{
			"12": {ID: 40, MangaID: 9, Number: "12", Language: "en"},
		},
		pages: map[int][]Page{
			40: {{ID: 1, PageNumber: 0, ImageURL: "https://cdn.mangafire.app/p/1.jpg"}},
		},
		nav: Navigation{Prev: &prev, Next: &next},
	}
	service := newTestService(repo)

	chapter, navigation, err := service.GetChapter(context.Background(), "berserk", "12", "en")
	require.NoError(t, err)

	assert.Len(t, chapter.Pages, 1)
	require.NotNil(t, navigation.Prev)
	assert.Equal(t, "11", *navigation.Prev)
	require.NotNil(t, navigation.Next)
	assert.Equal(t, "12.5", *navigation.Next)
}

/*
TestUpdateChapter_PartialPatch verifies overlay semantics: omitted fields
keep their current values.
*/
func TestUpdateChapter_PartialPatch(t *testing.T) {
	repo := &fakeRepository{
		byNumber: map[string]*Chapter{
			"12": {ID: 40, MangaID: 9, Number: "12", Language: "en", Title: pointer.To("The Eclipse")},
		},
	}
	service := newTestService(repo)

	newTitle := "The Eclipse, Part 2"
	updated, err := service.UpdateChapter(context.Background(), "berserk", "12", "", &Chapter{Title: pointer.To(newTitle)})
	require.NoError(t, err)

	assert.Equal(t, "12", updated.Number)
	assert.Equal(t, "en", updated.Language)
	require.NotNil(t, updated.Title)
	assert.Equal(t, newTitle, *updated.Title)
	require.NotNil(t, repo.updated)
}

/*
TestReplacePages_SyncsCount verifies the replacement call and the returned
page count.
*/
func TestReplacePages_SyncsCount(t *testing.T) {
	repo := &fakeRepository{
		byNumber: map[string]*Chapter{
			"12": {ID: 40, MangaID: 9, Number: "12", PageCount: 18},
		},
	}
	service := newTestService(repo)

	pages := testPages(3)
	updated, err := service.ReplacePages(context.Background(), "berserk", "12", "", pages)
	require.NoError(t, err)

	assert.Equal(t, 3, updated.PageCount)
	assert.Equal(t, pages, repo.replaced[40])
}

/*
TestReplacePages_RejectsNonSequential verifies that the replacement endpoint
enforces the same zero-based contiguity rule as create.
*/
func TestReplacePages_RejectsNonSequential(t *testing.T) {
	repo := &fakeRepository{
		byNumber: map[string]*Chapter{
			"12": {ID: 40, MangaID: 9, Number: "12", PageCount: 18},
		},
	}
	service := newTestService(repo)

	pages := []PageInput{
		{PageNumber: 1, ImageURL: "https://cdn.mangafire.app/p/a.jpg"},
		{PageNumber: 2, ImageURL: "https://cdn.mangafire.app/p/b.jpg"},
	}
	_, err := service.ReplacePages(context.Background(), "berserk", "12", "", pages)
	assert.Error(t, err)
	assert.Empty(t, repo.replaced)
}

/*
TestListChapters_UnknownSlug verifies that an unresolvable series slug fails
before any chapter storage access.
*/
func TestListChapters_UnknownSlug(t *testing.T) {
	service := newTestService(&fakeRepository{})

	_, _, err := service.ListChapters(context.Background(), "nope", "", 20, 0)
	assert.Error(t, err)
}
