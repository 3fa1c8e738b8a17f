package schema

// CatalogCourseTable represents the 'courses' table
type CatalogCourseTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogCourse is the schema definition for courses
var CatalogCourse = CatalogCourseTable{
	Table:       "courses",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "created_time",
	UpdatedAt:   "updated_time",
}

func (t CatalogCourseTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt}
}
