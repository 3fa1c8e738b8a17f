package schema

import "strings"

// List joins column names for SELECT and RETURNING clauses, optionally
// qualified by a table alias.
func List(alias string, columns ...string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
