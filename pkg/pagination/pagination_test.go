// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package pagination_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangafire/mangafire/pkg/pagination"
)

/*
TestNewMeta verifies the total page calculation, including the empty result
set yielding zero pages rather than one.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
	}{
		{"empty_result", 1, 20, 0, 0},
		{"exact_fit", 1, 20, 20, 1},
		{"one_overflow", 1, 20, 21, 2},
		{"partial_page", 2, 10, 95, 10},
		{"single_item", 1, 20, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.page, meta.Page)
		})
	}
}

/*
TestMeta_JSONKeys pins the wire names clients depend on, in particular the
"pages" key for the page count.
*/
func TestMeta_JSONKeys(t *testing.T) {
	payload, err := json.Marshal(pagination.NewMeta(2, 10, 95))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"page":2,"limit":10,"total":95,"pages":10}`, string(payload))
}

/*
TestParams_Offset verifies the (page-1)*limit offset arithmetic.
*/
func TestParams_Offset(t *testing.T) {
	tests := []struct {
		name   string
		page   int
		limit  int
		offset int
	}{
		{"first_page", 1, 20, 0},
		{"second_page", 2, 20, 20},
		{"third_page_small_limit", 3, 5, 10},
		{"zero_page_clamped", 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Params{Page: tt.page, Limit: tt.limit}
			assert.Equal(t, tt.offset, p.Offset())
		})
	}
}

/*
TestFromRequest verifies parsing and clamping of query parameters.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		page  int
		limit int
	}{
		{"defaults", "/manga", 1, 20},
		{"explicit", "/manga?page=3&limit=50", 3, 50},
		{"negative_page", "/manga?page=-1", 1, 20},
		{"limit_above_max", "/manga?limit=500", 1, 20},
		{"garbage_values", "/manga?page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := pagination.FromRequest(r)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
		})
	}
}

/*
TestFromRequestMax verifies the per-endpoint limit ceiling.
*/
func TestFromRequestMax(t *testing.T) {
	r := httptest.NewRequest("GET", "/chapters?limit=500", nil)

	// 500 is allowed under the chapter ceiling but not the catalog one.
	assert.Equal(t, 500, pagination.FromRequestMax(r, 1000).Limit)
	assert.Equal(t, 20, pagination.FromRequestMax(r, 100).Limit)
}
