package field

import (
	"time"

	"github.com/routinerocket/recstore/clause"
)

// Time represents a DATE or DATEONLY field.
type Time struct {
	column clause.Column
}

// Column returns the underlying column for this field
func (t Time) Column() clause.Column { return t.column }

// ColumnName implements the clause.Columnar interface
func (t Time) ColumnName() string {
	return t.column.ColumnName()
}

var _ clause.Columnar = Time{}

// WithColumn creates a new Time field with the specified column name.
func (t Time) WithColumn(name string) Time {
	return Time{column: clause.Column{Name: name}}
}

// Eq matches records at the same instant. On a DATEONLY column both sides
// are reduced to the calendar day first.
func (t Time) Eq(value time.Time) clause.Condition {
	return clause.Condition{Column: t.column, Value: value}
}

// On matches a DATEONLY column against a calendar day given as YYYY-MM-DD
// or any other form the caster accepts.
func (t Time) On(day string) clause.Condition {
	return clause.Condition{Column: t.column, Value: day}
}

// Before creates a less than predicate.
func (t Time) Before(value time.Time) clause.Condition {
	return clause.Condition{Column: t.column, Value: clause.Lt{Value: value}}
}

// After creates a greater than predicate.
func (t Time) After(value time.Time) clause.Condition {
	return clause.Condition{Column: t.column, Value: clause.Gt{Value: value}}
}

// Between creates an inclusive range predicate.
func (t Time) Between(start, end time.Time) clause.Condition {
	return clause.Condition{Column: t.column, Value: clause.Between{Min: start, Max: end}}
}

// Asc creates an ascending sort order.
func (t Time) Asc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: t.column}
}

// Desc creates a descending sort order.
func (t Time) Desc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: t.column, Desc: true}
}
