package field

import "github.com/routinerocket/recstore/clause"

// String represents a text field.
type String struct {
	column clause.Column
}

// Column returns the underlying column for this field
func (s String) Column() clause.Column { return s.column }

// ColumnName implements the clause.Columnar interface
func (s String) ColumnName() string {
	return s.column.ColumnName()
}

var _ clause.Columnar = String{}

// WithColumn creates a new String field with the specified column name.
func (s String) WithColumn(name string) String {
	return String{column: clause.Column{Name: name}}
}

// Eq creates an equality condition (field == value).
func (s String) Eq(value string) clause.Condition {
	return clause.Condition{Column: s.column, Value: value}
}

// IsNull creates a condition matching null or absent values.
func (s String) IsNull() clause.Condition {
	return clause.Condition{Column: s.column, Value: nil}
}

// Neq creates a not equal predicate.
func (s String) Neq(value string) clause.Condition {
	return clause.Condition{Column: s.column, Value: clause.Ne{Value: value}}
}

// Like creates a pattern predicate.
func (s String) Like(pattern string) clause.Condition {
	return clause.Condition{Column: s.column, Value: clause.Like{Pattern: pattern}}
}

// In creates a membership predicate.
func (s String) In(values ...string) clause.Condition {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return clause.Condition{Column: s.column, Value: clause.In{Values: vals}}
}

// Asc creates an ascending sort order.
func (s String) Asc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: s.column}
}

// Desc creates a descending sort order.
func (s String) Desc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: s.column, Desc: true}
}
