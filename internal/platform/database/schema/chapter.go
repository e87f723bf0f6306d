package schema

// ChapterTable represents the 'chapters' table.
//
// Number is stored as text so values like "12.5" survive round-trips; queries
// cast it to numeric for ordering.
type ChapterTable struct {
	Table     string
	ID        string
	MangaID   string
	VolumeID  string
	Number    string
	Title     string
	Slug      string
	Language  string
	PageCount string
	CreatedAt string
	UpdatedAt string
}

// Chapter is the schema definition for chapters
var Chapter = ChapterTable{
	Table:     "chapters",
	ID:        "id",
	MangaID:   "mangaid",
	VolumeID:  "volumeid",
	Number:    "number",
	Title:     "title",
	Slug:      "slug",
	Language:  "language",
	PageCount: "pagecount",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ChapterTable) Columns() []string {
	return []string{
		t.ID, t.MangaID, t.VolumeID, t.Number, t.Title, t.Slug, t.Language,
		t.PageCount, t.CreatedAt, t.UpdatedAt,
	}
}
