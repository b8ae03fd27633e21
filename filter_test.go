package recstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/routinerocket/recstore/clause"
)

func filterRecord() Record {
	rec := NewRecord()
	rec.put("id", Integer(5))
	rec.put("name", Text("Read"))
	rec.put("done", Bool(true))
	rec.put("score", Float(4))
	rec.put("day", Value{kind: KindDateOnly, str: "2024-03-15"})
	rec.put("at", DateTime(fixedNow))
	rec.put("note", Null())
	return rec
}

func filterSchema() *Schema {
	return NewSchema(
		Column{Name: "id", Type: TypeInteger},
		Column{Name: "name", Type: TypeText},
		Column{Name: "done", Type: TypeBoolean},
		Column{Name: "score", Type: TypeFloat},
		Column{Name: "day", Type: TypeDateOnly},
		Column{Name: "at", Type: TypeDateTime},
		Column{Name: "note", Type: TypeText},
	)
}

func TestWhereLooseEquality(t *testing.T) {
	rec, schema := filterRecord(), filterSchema()

	tests := []struct {
		name  string
		where Where
		want  MatchOutcome
	}{
		{"empty matches", Where{}, Matched},
		{"nil matches", nil, Matched},
		{"integer", Where{"id": 5}, Matched},
		{"integer text", Where{"id": "5"}, Matched},
		{"padded integer text", Where{"id": " 5 "}, Matched},
		{"float equals integer", Where{"id": 5.0}, Matched},
		{"different integer", Where{"id": 6}, NoMatch},
		{"boolean is one", Where{"done": 1}, Matched},
		{"boolean text", Where{"done": "1"}, Matched},
		{"boolean word is not a number", Where{"done": "true"}, NoMatch},
		{"text is case sensitive", Where{"name": "read"}, NoMatch},
		{"text", Where{"name": "Read"}, Matched},
		{"float", Where{"score": "4"}, Matched},
		{"null equals nil", Where{"note": nil}, Matched},
		{"null is not empty text", Where{"note": ""}, NoMatch},
		{"absent equals nil", Where{"missing": nil}, Matched},
		{"absent is not zero", Where{"missing": 0}, NoMatch},
		{"every entry must hold", Where{"id": 5, "name": "Write"}, NoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.where.Evaluate(schema, rec))
		})
	}
}

func TestWhereDates(t *testing.T) {
	rec, schema := filterRecord(), filterSchema()

	assert.Equal(t, Matched, Where{"day": "2024-03-15"}.Evaluate(schema, rec))
	assert.Equal(t, Matched, Where{"day": "2024-03-15T22:10:00Z"}.Evaluate(schema, rec), "DATEONLY compares days")
	assert.Equal(t, Matched, Where{"day": time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)}.Evaluate(schema, rec))
	assert.Equal(t, NoMatch, Where{"day": "2024-03-16"}.Evaluate(schema, rec))

	assert.Equal(t, Matched, Where{"at": fixedNow}.Evaluate(schema, rec), "time.Time compares instants")
	assert.Equal(t, Matched, Where{"at": fixedNow.In(time.FixedZone("X", 7200))}.Evaluate(schema, rec))
	assert.Equal(t, NoMatch, Where{"at": fixedNow.Add(time.Millisecond)}.Evaluate(schema, rec))
	assert.Equal(t, NoMatch, Where{"at": "2024-03-15T11:30:00+01:00"}.Evaluate(schema, rec), "text compares as text")
}

// Structured predicates are recognised but never evaluated: a record that
// fails the predicate is still selected.
func TestWhereStructuredPredicatesAreInert(t *testing.T) {
	rec, schema := filterRecord(), filterSchema()

	tests := []struct {
		name  string
		where Where
	}{
		{"greater than", Where{"id": clause.Gt{Value: 100}}},
		{"in", Where{"id": clause.In{Values: []any{1, 2}}}},
		{"not", Where{"name": clause.Not{Op: clause.Like{Pattern: "R%"}}}},
		{"plain map", Where{"id": map[string]any{"gt": 100}}},
		{"slice", Where{"id": []int{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, MatchUnsupported, tt.where.Evaluate(schema, rec))
			assert.True(t, tt.where.Evaluate(schema, rec).OK())
		})
	}

	// A scalar entry still filters next to an inert one.
	w := Where{"id": clause.Gt{Value: 100}, "name": "Write"}
	assert.Equal(t, NoMatch, w.Evaluate(schema, rec))
}

func TestWhereUnsupported(t *testing.T) {
	w := Where{
		"score": map[string]any{"gte": 3},
		"id":    clause.Between{Min: 1, Max: 3},
		"name":  "Read",
	}
	assert.Equal(t, [][2]string{{"id", "between"}, {"score", "object"}}, w.unsupported())
	assert.Empty(t, Where{"at": fixedNow, "name": []byte("x")}.unsupported())
}

func TestMatch(t *testing.T) {
	w := Match(
		clause.Condition{Column: clause.Column{Name: "id"}, Value: 1},
		clause.Condition{Column: clause.Column{Name: "name"}, Value: "Read"},
		clause.Condition{Column: clause.Column{Name: "id"}, Value: 5},
	)
	assert.Equal(t, Where{"id": 5, "name": "Read"}, w)
	assert.Equal(t, Matched, w.Evaluate(filterSchema(), filterRecord()))
}

func TestMatchOutcomeString(t *testing.T) {
	assert.Equal(t, "no match", NoMatch.String())
	assert.Equal(t, "matched", Matched.String())
	assert.False(t, NoMatch.OK())
}
