// Package clause holds the predicate vocabulary of the record store: column
// references, where conditions, structured operators and sort orders.
//
// A where entry whose value is a plain scalar is an equality test. A value
// implementing Operator (range, negation, membership, pattern, and/or) is
// recognised by the filter but not evaluated; it matches every record.
package clause

import (
	"fmt"
	"strings"
)

// Columnar defines an interface for providing a column name.
type Columnar interface {
	ColumnName() string
}

// Column names one field of a table.
type Column struct {
	Name string
}

// ColumnName returns the column name.
func (c Column) ColumnName() string { return c.Name }

var _ Columnar = Column{}

// Condition is one where entry: the named column compared against Value.
// Value is either a scalar (loose equality) or an Operator.
type Condition struct {
	Column Column
	Value  any
}

// Operator is a structured predicate.
type Operator interface {
	// Operator returns the short operator name, e.g. "gte" or "in".
	Operator() string
}

// Ne represents a not equal predicate (column != value)
type Ne struct {
	Value any
}

func (Ne) Operator() string { return "ne" }

// Gt represents a greater than predicate (column > value)
type Gt struct {
	Value any
}

func (Gt) Operator() string { return "gt" }

// Gte represents a greater than or equal predicate (column >= value)
type Gte struct {
	Value any
}

func (Gte) Operator() string { return "gte" }

// Lt represents a less than predicate (column < value)
type Lt struct {
	Value any
}

func (Lt) Operator() string { return "lt" }

// Lte represents a less than or equal predicate (column <= value)
type Lte struct {
	Value any
}

func (Lte) Operator() string { return "lte" }

// Between represents an inclusive range predicate
type Between struct {
	Min any
	Max any
}

func (Between) Operator() string { return "between" }

// Like represents a pattern predicate with % and _ wildcards
type Like struct {
	Pattern string
}

func (Like) Operator() string { return "like" }

// In represents a membership predicate
type In struct {
	Values []any
}

func (In) Operator() string { return "in" }

// NotIn represents a negated membership predicate
type NotIn struct {
	Values []any
}

func (NotIn) Operator() string { return "notIn" }

// And requires every predicate to hold
type And []Operator

func (And) Operator() string { return "and" }

// Or requires at least one predicate to hold
type Or []Operator

func (Or) Operator() string { return "or" }

// Not negates a predicate
type Not struct {
	Op Operator
}

func (Not) Operator() string { return "not" }

// Describe renders an operator for logs, nesting and/or/not.
func Describe(op Operator) string {
	switch o := op.(type) {
	case And:
		return describeList("and", o)
	case Or:
		return describeList("or", o)
	case Not:
		if o.Op == nil {
			return "not()"
		}
		return "not(" + Describe(o.Op) + ")"
	case Between:
		return fmt.Sprintf("between(%v, %v)", o.Min, o.Max)
	case In:
		return fmt.Sprintf("in%v", o.Values)
	case NotIn:
		return fmt.Sprintf("notIn%v", o.Values)
	case Like:
		return fmt.Sprintf("like(%q)", o.Pattern)
	case Ne:
		return fmt.Sprintf("ne(%v)", o.Value)
	case Gt:
		return fmt.Sprintf("gt(%v)", o.Value)
	case Gte:
		return fmt.Sprintf("gte(%v)", o.Value)
	case Lt:
		return fmt.Sprintf("lt(%v)", o.Value)
	case Lte:
		return fmt.Sprintf("lte(%v)", o.Value)
	case nil:
		return "<nil>"
	default:
		return op.Operator()
	}
}

func describeList(name string, ops []Operator) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = Describe(op)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// OrderByColumn represents a sort order on one column
type OrderByColumn struct {
	Column Column
	Desc   bool
}

func (o OrderByColumn) String() string {
	if o.Desc {
		return o.Column.Name + " DESC"
	}
	return o.Column.Name
}
