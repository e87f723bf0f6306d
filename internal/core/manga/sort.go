// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package manga

import (
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/mangafire/mangafire/internal/platform/database/schema"
)

// sortColumns is the closed whitelist of client sort keys. Anything outside
// this map silently falls back to the default, so a crafted sort parameter
// can never reach the SQL layer as raw text.
var sortColumns = map[string]string{
	"rating":      schema.Manga.Rating,
	"views":       schema.Manga.Views,
	"createdAt":   schema.Manga.CreatedAt,
	"updatedAt":   schema.Manga.UpdatedAt,
	"releaseYear": schema.Manga.ReleaseYear,
	"title":       schema.Manga.Title,
}

const (
	defaultSortKey = "createdAt"
	defaultOrder   = "desc"
)

// OrderExpression resolves a (sortBy, order) pair into a SQL ordering.
//
// Unknown sort keys resolve to createdAt; anything but "asc" orders
// descending. A trailing id tiebreak keeps pagination stable when the
// primary column carries duplicate values.
func OrderExpression(sortBy, order string) []exp.OrderedExpression {
	column, known := sortColumns[sortBy]
	if !known {
		column = sortColumns[defaultSortKey]
	}

	primary := mangaCol(column).Desc()
	if order == "asc" {
		primary = mangaCol(column).Asc()
	}

	return []exp.OrderedExpression{primary, mangaCol(schema.Manga.ID).Desc()}
}

// IsSortable reports whether the sort key is in the whitelist.
func IsSortable(sortBy string) bool {
	_, ok := sortColumns[sortBy]
	return ok
}
