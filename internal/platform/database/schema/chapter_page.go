package schema

// ChapterPageTable represents the 'chapter_pages' table
type ChapterPageTable struct {
	Table      string
	ID         string
	ChapterID  string
	PageNumber string
	ImageURL   string
	Width      string
	Height     string
}

// ChapterPage is the schema definition for chapter_pages
var ChapterPage = ChapterPageTable{
	Table:      "chapter_pages",
	ID:         "id",
	ChapterID:  "chapterid",
	PageNumber: "pagenumber",
	ImageURL:   "imageurl",
	Width:      "width",
	Height:     "height",
}

// Columns returns all standard column names
func (t ChapterPageTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.PageNumber, t.ImageURL, t.Width, t.Height}
}
