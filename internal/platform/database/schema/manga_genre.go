package schema

// MangaGenreTable represents the 'manga_genres' junction table
type MangaGenreTable struct {
	Table   string
	MangaID string
	GenreID string
}

// MangaGenre is the schema definition for manga_genres
var MangaGenre = MangaGenreTable{
	Table:   "manga_genres",
	MangaID: "mangaid",
	GenreID: "genreid",
}
