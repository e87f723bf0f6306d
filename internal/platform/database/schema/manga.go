// Package schema centralizes table and column identifiers used to build SQL.
//
// Keeping the physical names in one place means a column rename touches a
// single file instead of every query in the codebase.
package schema

// MangaTable represents the 'manga' table
type MangaTable struct {
	Table             string
	ID                string
	Title             string
	Slug              string
	AlternativeTitles string
	Description       string
	Author            string
	Artist            string
	CoverImage        string
	Status            string
	Type              string
	Language          string
	Rating            string
	Views             string
	ReleaseYear       string
	SearchVector      string
	CreatedAt         string
	UpdatedAt         string
}

// Manga is the schema definition for manga
var Manga = MangaTable{
	Table:             "manga",
	ID:                "id",
	Title:             "title",
	Slug:              "slug",
	AlternativeTitles: "alternativetitles",
	Description:       "description",
	Author:            "author",
	Artist:            "artist",
	CoverImage:        "coverimage",
	Status:            "status",
	Type:              "type",
	Language:          "language",
	Rating:            "rating",
	Views:             "views",
	ReleaseYear:       "releaseyear",
	SearchVector:      "searchvector",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t MangaTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.AlternativeTitles, t.Description, t.Author,
		t.Artist, t.CoverImage, t.Status, t.Type, t.Language, t.Rating,
		t.Views, t.ReleaseYear, t.CreatedAt, t.UpdatedAt,
	}
}
