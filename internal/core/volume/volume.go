// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

// Package volume groups chapters into published book volumes.
package volume

import "time"

// Volume is a published collection of chapters within a series.
type Volume struct {
	ID         int       `json:"id"`
	MangaID    int       `json:"mangaId"`
	Number     float64   `json:"number"`
	Title      *string   `json:"title"`
	CoverImage *string   `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	FieldNumber = "number"
	FieldTitle  = "title"
)
