// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestListManga_QueryParamContract verifies the public parameter names for
discovery: sortBy, sortOrder, and genreId reach the service as submitted.
*/
func TestListManga_QueryParamContract(t *testing.T) {
	repo := &fakeRepository{listItems: []*Manga{}, listTotal: 0}
	handler := NewHandler(NewService(repo, slog.Default()))

	request := httptest.NewRequest("GET",
		"/?sortBy=rating&sortOrder=asc&genreId=3&status=ongoing", nil)
	recorder := httptest.NewRecorder()

	handler.listManga(recorder, request)
	require.Equal(t, 200, recorder.Code)

	assert.Equal(t, "rating", repo.lastSortBy)
	assert.Equal(t, "asc", repo.lastOrder)
	assert.Equal(t, 3, repo.lastFilter.GenreID)
	assert.Equal(t, StatusOngoing, repo.lastFilter.Status)
}
