package querybuilder

// Condition is a single clause with its arguments; conditions are joined with AND
type Condition struct {
	clause string
	args   []interface{}
}
