// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangafire/mangafire/pkg/query"
)

/*
TestIntSlice verifies that unparsable entries are dropped instead of
failing the whole filter.
*/
func TestIntSlice(t *testing.T) {
	assert.Equal(t, []int{3, 7}, query.IntSlice([]string{"3", "x", "7"}))
	assert.Nil(t, query.IntSlice(nil))
	assert.Nil(t, query.IntSlice([]string{"abc"}))
}

/*
TestStringSlice verifies comma splitting, trimming, and the nil result for
an absent parameter.
*/
func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"2019", "2021"}, query.StringSlice(" 2019 ,2021,"))
	assert.Nil(t, query.StringSlice(""))
	assert.Nil(t, query.StringSlice(" , ,"))
}
