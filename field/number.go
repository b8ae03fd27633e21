package field

import (
	"github.com/routinerocket/recstore/clause"
	"golang.org/x/exp/constraints"
)

// Number represents a numeric field that supports both integer and float types.
type Number[T constraints.Integer | constraints.Float] struct {
	column clause.Column
}

// Column returns the underlying column for this field
func (n Number[T]) Column() clause.Column { return n.column }

// ColumnName implements the clause.Columnar interface
func (n Number[T]) ColumnName() string {
	return n.column.ColumnName()
}

var _ clause.Columnar = Number[int]{}

// WithColumn creates a new Number field with the specified column name.
func (n Number[T]) WithColumn(name string) Number[T] {
	return Number[T]{column: clause.Column{Name: name}}
}

// Eq creates an equality condition (field == value).
func (n Number[T]) Eq(value T) clause.Condition {
	return clause.Condition{Column: n.column, Value: value}
}

// IsNull creates a condition matching null or absent values.
func (n Number[T]) IsNull() clause.Condition {
	return clause.Condition{Column: n.column, Value: nil}
}

// The comparisons below build structured predicates. The record store
// recognises them but matches every record.

// Neq creates a not equal predicate.
func (n Number[T]) Neq(value T) clause.Condition {
	return n.op(clause.Ne{Value: value})
}

// Gt creates a greater than predicate.
func (n Number[T]) Gt(value T) clause.Condition {
	return n.op(clause.Gt{Value: value})
}

// Gte creates a greater than or equal predicate.
func (n Number[T]) Gte(value T) clause.Condition {
	return n.op(clause.Gte{Value: value})
}

// Lt creates a less than predicate.
func (n Number[T]) Lt(value T) clause.Condition {
	return n.op(clause.Lt{Value: value})
}

// Lte creates a less than or equal predicate.
func (n Number[T]) Lte(value T) clause.Condition {
	return n.op(clause.Lte{Value: value})
}

// Between creates an inclusive range predicate.
func (n Number[T]) Between(v1, v2 T) clause.Condition {
	return n.op(clause.Between{Min: v1, Max: v2})
}

// In creates a membership predicate.
func (n Number[T]) In(values ...T) clause.Condition {
	return n.op(clause.In{Values: toAny(values)})
}

// NotIn creates a negated membership predicate.
func (n Number[T]) NotIn(values ...T) clause.Condition {
	return n.op(clause.NotIn{Values: toAny(values)})
}

func (n Number[T]) op(o clause.Operator) clause.Condition {
	return clause.Condition{Column: n.column, Value: o}
}

// Asc creates an ascending sort order.
func (n Number[T]) Asc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: n.column}
}

// Desc creates a descending sort order.
func (n Number[T]) Desc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: n.column, Desc: true}
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
