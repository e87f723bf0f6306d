package schema

// VolumeTable represents the 'volumes' table
type VolumeTable struct {
	Table      string
	ID         string
	MangaID    string
	Number     string
	Title      string
	CoverImage string
	CreatedAt  string
}

// Volume is the schema definition for volumes
var Volume = VolumeTable{
	Table:      "volumes",
	ID:         "id",
	MangaID:    "mangaid",
	Number:     "number",
	Title:      "title",
	CoverImage: "coverimage",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t VolumeTable) Columns() []string {
	return []string{t.ID, t.MangaID, t.Number, t.Title, t.CoverImage, t.CreatedAt}
}
