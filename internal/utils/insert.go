package querybuilder

import "sort"

// InsertRows holds one value slice per inserted row
type InsertRows [][]interface{}

// UpdateData maps column names to their new values
type UpdateData map[string]interface{}

// Columns returns the column names in a stable order
func (d UpdateData) Columns() []string {
	cols := make([]string, 0, len(d))
	for col := range d {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}
