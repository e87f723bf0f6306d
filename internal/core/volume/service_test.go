// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package volume

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangafire/mangafire/internal/core/manga"
	"github.com/mangafire/mangafire/internal/platform/dberr"
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
	return nil, dberr.ErrNotFound
}

// fakeRepository is an in-memory Repository double.
type fakeRepository struct {
	byID    map[int]*Volume
	nextID  int
	created *Volume
	updated *Volume
	deleted []int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[int]*Volume{}, nextID: 1}
}

func (f *fakeRepository) ListByManga(ctx context.Context, mangaID int) ([]*Volume, error) {
	var out []*Volume
	for _, v := range f.byID {
		if v.MangaID == mangaID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id int) (*Volume, error) {
	if v, ok := f.byID[id]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Create(ctx context.Context, volume *Volume) error {
	volume.ID = f.nextID
	f.nextID++
	copied := *volume
	f.byID[volume.ID] = &copied
	f.created = &copied
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, volume *Volume) error {
	if _, ok := f.byID[volume.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *volume
	f.byID[volume.ID] = &copied
	f.updated = &copied
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int) error {
	if _, ok := f.byID[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService(repo Repository) *Service {
	series := &fakeSeries{bySlug: map[string]*manga.Manga{
		"berserk": {ID: 9, Title: "Berserk", Slug: "berserk"},
	}}
	return NewService(repo, series, slog.Default())
}

func TestCreateVolume_BindsSeries(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	volume := &Volume{Number: 3, Title: pointer.To("Golden Age Arc")}
	require.NoError(t, service.CreateVolume(context.Background(), "berserk", volume))

	require.NotNil(t, repo.created)
	assert.Equal(t, 9, repo.created.MangaID)
	assert.Equal(t, float64(3), repo.created.Number)
}

func TestCreateVolume_RejectsNonPositiveNumber(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.CreateVolume(context.Background(), "berserk", &Volume{Number: 0})
	require.Error(t, err)
}

func TestCreateVolume_UnknownSlug(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.CreateVolume(context.Background(), "nope", &Volume{Number: 1})
	require.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestUpdateVolume_PartialPatch(t *testing.T) {
	repo := newFakeRepository()
	repo.byID[5] = &Volume{ID: 5, MangaID: 9, Number: 2, Title: pointer.To("Old")}
	service := newTestService(repo)

	updated, err := service.UpdateVolume(context.Background(), 5, &Volume{Title: pointer.To("New")})
	require.NoError(t, err)

	assert.Equal(t, float64(2), updated.Number)
	require.NotNil(t, updated.Title)
	assert.Equal(t, "New", *updated.Title)
}

func TestDeleteVolume_Missing(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.DeleteVolume(context.Background(), 42)
	require.ErrorIs(t, err, dberr.ErrNotFound)
}
