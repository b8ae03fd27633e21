package field

import "github.com/routinerocket/recstore/clause"

// Bool represents a boolean field.
type Bool struct {
	column clause.Column
}

// Column returns the underlying column for this field
func (b Bool) Column() clause.Column { return b.column }

// ColumnName implements the clause.Columnar interface
func (b Bool) ColumnName() string {
	return b.column.ColumnName()
}

var _ clause.Columnar = Bool{}

// WithColumn creates a new Bool field with the specified column name.
func (b Bool) WithColumn(name string) Bool {
	return Bool{column: clause.Column{Name: name}}
}

// Eq creates an equality condition (field == value).
func (b Bool) Eq(value bool) clause.Condition {
	return clause.Condition{Column: b.column, Value: value}
}

// IsTrue matches records whose field is true.
func (b Bool) IsTrue() clause.Condition {
	return b.Eq(true)
}

// IsFalse matches records whose field is false.
func (b Bool) IsFalse() clause.Condition {
	return b.Eq(false)
}
