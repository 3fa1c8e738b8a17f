package schema

// CatalogLessonTable represents the 'lessons' table
type CatalogLessonTable struct {
	Table       string
	ID          string
	Name        string
	NameFolded  string
	Description string
	Order       string
	ChapterID   string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogLesson is the schema definition for lessons
var CatalogLesson = CatalogLessonTable{
	Table:       "lessons",
	ID:          "id",
	Name:        "name",
	NameFolded:  "name_folded",
	Description: "description",
	Order:       "order_number",
	ChapterID:   "chapter_id",
	CreatedAt:   "created_time",
	UpdatedAt:   "updated_time",
}

func (t CatalogLessonTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.Order, t.ChapterID, t.CreatedAt, t.UpdatedAt}
}
