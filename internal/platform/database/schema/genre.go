package schema

// GenreTable represents the 'genres' table
type GenreTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
}

// Genre is the schema definition for genres
var Genre = GenreTable{
	Table:       "genres",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
}

// Columns returns all standard column names
func (t GenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Description}
}
