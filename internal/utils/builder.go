package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder renders SQL with "?" placeholders; callers rebind them for
// their driver (sqlx.DB.Rebind for postgres)
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder

	OrderBy(col string, asc bool) QueryBuilder
	Limit(n int) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	Update(table string, data UpdateData) QueryBuilder

	OnConflict(cols ...string) QueryBuilder
	DoNothing() QueryBuilder

	Returning(cols ...string) QueryBuilder

	Build() (string, []interface{})
}

type queryBuilder struct {
	schema     string
	table      string
	cols       []string
	conditions []Condition
	values     InsertRows
	updateData UpdateData
	orderBy    []string
	limit      int
	returning  []string

	onConflict []string
	doNothing  bool
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{
		clause: clause,
		args:   args,
	})
	return q
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	direction := "ASC"
	if !asc {
		direction = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, direction))
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) Update(table string, data UpdateData) QueryBuilder {
	q.table = table
	q.updateData = data
	return q
}

func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

func (q *queryBuilder) DoNothing() QueryBuilder {
	q.doNothing = true
	return q
}

func (q *queryBuilder) Returning(cols ...string) QueryBuilder {
	q.returning = cols
	return q
}

// Build returns an empty query when the builder holds an inconsistent statement
func (q *queryBuilder) Build() (string, []interface{}) {
	switch {
	case len(q.values) > 0:
		return q.buildInsert()
	case len(q.updateData) > 0:
		return q.buildUpdate()
	default:
		return q.buildSelect()
	}
}

func (q *queryBuilder) qualified() string {
	if q.schema == "" {
		return q.table
	}
	return q.schema + "." + q.table
}

func buildCondition(conditions []Condition) (string, []interface{}) {
	parts := make([]string, 0, len(conditions))
	args := make([]interface{}, 0)
	for _, cond := range conditions {
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}
	return strings.Join(parts, " AND "), args
}

func (q *queryBuilder) appendWhere(query string, args []interface{}) (string, []interface{}) {
	if len(q.conditions) == 0 {
		return query, args
	}
	condition, condArgs := buildCondition(q.conditions)
	return query + " WHERE " + condition, append(args, condArgs...)
}

func (q *queryBuilder) appendReturning(query string) string {
	if len(q.returning) == 0 {
		return query
	}
	return query + " RETURNING " + strings.Join(q.returning, ", ")
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualified())

	query, args := q.appendWhere(query, nil)
	if len(q.orderBy) > 0 {
		query += " ORDER BY " + strings.Join(q.orderBy, ", ")
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, args
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	numOfParam := len(q.cols)
	if numOfParam == 0 {
		return "", nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ")
	valueTuples := make([]string, 0, len(q.values))
	args := make([]interface{}, 0, numOfParam*len(q.values))
	for _, row := range q.values {
		if len(row) != numOfParam {
			return "", nil
		}
		valueTuples = append(valueTuples, "("+placeholders+")")
		args = append(args, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.qualified(), strings.Join(q.cols, ", "), strings.Join(valueTuples, ", "))

	if len(q.onConflict) > 0 {
		// only DO NOTHING is supported
		if !q.doNothing {
			return "", nil
		}
		query += fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", strings.Join(q.onConflict, ", "))
	}
	return q.appendReturning(query), args
}

func (q *queryBuilder) buildUpdate() (string, []interface{}) {
	cols := q.updateData.Columns()
	setClause := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		setClause = append(setClause, col+" = ?")
		args = append(args, q.updateData[col])
	}

	query := fmt.Sprintf("UPDATE %s SET %s", q.qualified(), strings.Join(setClause, ", "))
	query, args = q.appendWhere(query, args)
	return q.appendReturning(query), args
}
