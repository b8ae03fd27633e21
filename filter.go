package recstore

import (
	"reflect"
	"sort"
	"time"

	"github.com/routinerocket/recstore/clause"
)

// Where selects records by column. Each entry is either a scalar compared
// with loose equality or a structured predicate (clause.Operator, or any map,
// slice or struct) which is recognised but not evaluated: it matches every
// record. A nil value matches null and absent fields.
type Where map[string]any

// Match builds a Where from typed conditions. A later condition on the same
// column replaces an earlier one.
func Match(conds ...clause.Condition) Where {
	w := make(Where, len(conds))
	for _, c := range conds {
		w[c.Column.Name] = c.Value
	}
	return w
}

// MatchOutcome is the result of testing one record against a Where.
type MatchOutcome int

const (
	// NoMatch means at least one scalar entry differs.
	NoMatch MatchOutcome = iota
	// Matched means every entry was evaluated and holds.
	Matched
	// MatchUnsupported means every scalar entry holds and at least one
	// structured predicate was skipped. The record counts as a match.
	MatchUnsupported
)

func (o MatchOutcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case MatchUnsupported:
		return "matched (unsupported predicate ignored)"
	}
	return "no match"
}

// OK reports whether the record is selected.
func (o MatchOutcome) OK() bool { return o != NoMatch }

// Evaluate tests rec against w using the column types of schema.
func (w Where) Evaluate(schema *Schema, rec Record) MatchOutcome {
	outcome := Matched
	for column, query := range w {
		if _, ok := structured(query); ok {
			outcome = MatchUnsupported
			continue
		}
		var col *Column
		if c, ok := schema.Column(column); ok {
			col = &c
		}
		if !matchScalar(col, rec.Value(column), ValueOf(query)) {
			return NoMatch
		}
	}
	return outcome
}

// unsupported returns the columns holding structured predicates with the
// operator name of each, sorted by column.
func (w Where) unsupported() [][2]string {
	var out [][2]string
	for column, query := range w {
		if name, ok := structured(query); ok {
			out = append(out, [2]string{column, name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// structured reports whether a where value is an object rather than a scalar.
func structured(query any) (string, bool) {
	switch q := query.(type) {
	case nil, Value, time.Time, *time.Time, []byte:
		return "", false
	case clause.Operator:
		return q.Operator(), true
	}
	switch reflect.ValueOf(query).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return "object", true
	}
	return "", false
}

func matchScalar(col *Column, stored, query Value) bool {
	if col != nil && col.Type == TypeDateOnly {
		return looseEqual(normalizeDay(stored), normalizeDay(query))
	}
	if query.kind == KindDateTime {
		want, _ := parseDate(query)
		got, ok := parseDate(stored)
		return ok && got.UnixMilli() == want.UnixMilli()
	}
	return looseEqual(stored, query)
}

func normalizeDay(v Value) Value {
	if day, outcome := Cast(v, TypeDateOnly); outcome == CastApplied {
		return day
	}
	return v
}

// looseEqual compares two values the way a dynamically typed == does: null
// only equals null, text compares as text, and every other mix is compared
// as numbers with booleans read as 0 and 1 and text parsed as a decimal.
func looseEqual(a, b Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}

	_, aText := a.Str()
	_, bText := b.Str()
	switch {
	case aText && bText:
		return a.str == b.str
	case a.kind == KindBoolean && b.kind == KindBoolean:
		return a.b == b.b
	case a.kind == KindInteger && b.kind == KindInteger:
		return a.num == b.num
	}

	x, ok := a.numeric()
	if !ok {
		return false
	}
	y, ok := b.numeric()
	if !ok {
		return false
	}
	return x == y
}
