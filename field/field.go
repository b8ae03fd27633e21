// Package field provides typed column references for building record store
// conditions and sort orders.
package field

import "github.com/routinerocket/recstore/clause"

// Field represents a generic field for any type.
// Use this for types that don't have a specific field type.
type Field struct {
	column clause.Column
}

// Column returns the underlying column for this field
func (f Field) Column() clause.Column { return f.column }

// ColumnName implements the clause.Columnar interface
func (f Field) ColumnName() string {
	return f.column.ColumnName()
}

var _ clause.Columnar = Field{}

// WithColumn creates a new Field with the specified column name.
func (f Field) WithColumn(name string) Field {
	return Field{column: clause.Column{Name: name}}
}

// Eq matches records whose field loosely equals value.
func (f Field) Eq(value any) clause.Condition {
	return clause.Condition{Column: f.column, Value: value}
}

// IsNull matches records whose field is null or absent.
func (f Field) IsNull() clause.Condition {
	return clause.Condition{Column: f.column, Value: nil}
}

// Neq creates a not equal predicate. Recognised but not evaluated.
func (f Field) Neq(value any) clause.Condition {
	return clause.Condition{Column: f.column, Value: clause.Ne{Value: value}}
}

// In creates a membership predicate. Recognised but not evaluated.
func (f Field) In(values ...any) clause.Condition {
	return clause.Condition{Column: f.column, Value: clause.In{Values: values}}
}

// Asc creates an ascending sort order.
func (f Field) Asc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: f.column}
}

// Desc creates a descending sort order.
func (f Field) Desc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: f.column, Desc: true}
}
