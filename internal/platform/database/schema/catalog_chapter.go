package schema

// CatalogChapterTable represents the 'chapters' table
type CatalogChapterTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Order       string
	CourseID    string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogChapter is the schema definition for chapters
var CatalogChapter = CatalogChapterTable{
	Table:       "chapters",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Order:       "order_number",
	CourseID:    "course_id",
	CreatedAt:   "created_time",
	UpdatedAt:   "updated_time",
}

func (t CatalogChapterTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.Order, t.CourseID, t.CreatedAt, t.UpdatedAt}
}
