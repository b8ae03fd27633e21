package recstore

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Type is the declared semantic type of a schema column.
type Type string

const (
	TypeText     Type = "TEXT"
	TypeInteger  Type = "INTEGER"
	TypeFloat    Type = "FLOAT"
	TypeBoolean  Type = "BOOLEAN"
	TypeDateTime Type = "DATE"
	TypeDateOnly Type = "DATEONLY"
)

const (
	dateTimeLayout = "2006-01-02T15:04:05.000Z"
	dateOnlyLayout = "2006-01-02"
)

// CastOutcome tells the caller what Cast did with its input.
type CastOutcome int

const (
	// CastSkipped means the input was null and was returned untouched.
	CastSkipped CastOutcome = iota
	// CastApplied means the input was normalized to the column type.
	CastApplied
	// CastPassThrough means the column type performs no coercion.
	CastPassThrough
	// CastUncastable means the input could not be read as the column type
	// and was returned unchanged.
	CastUncastable
)

func (o CastOutcome) String() string {
	switch o {
	case CastSkipped:
		return "skipped"
	case CastApplied:
		return "applied"
	case CastPassThrough:
		return "pass-through"
	case CastUncastable:
		return "uncastable"
	}
	return "unknown"
}

// dateLayouts are tried in order when reading a string as a date.
// Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	dateOnlyLayout,
	"2006/01/02",
	"2006/01/02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon Jan 02 2006",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// Cast normalizes v to the column type t.
//
// Null input is never coerced. DATEONLY and DATE columns produce canonical strings when the
// input reads as a date and keep the input as-is otherwise (CastUncastable). BOOLEAN columns
// coerce by truthiness. Every other type is a pass-through. Cast never fails.
func Cast(v Value, t Type) (Value, CastOutcome) {
	if v.IsNull() {
		return v, CastSkipped
	}

	switch t {
	case TypeDateOnly:
		tm, ok := parseDate(v)
		if !ok {
			return v, CastUncastable
		}
		return DateOnly(tm), CastApplied
	case TypeDateTime:
		tm, ok := parseDate(v)
		if !ok {
			return v, CastUncastable
		}
		return DateTime(tm), CastApplied
	case TypeBoolean:
		return Bool(truthy(v)), CastApplied
	}
	return v, CastPassThrough
}

// parseDate reads v as an instant. Strings go through dateLayouts,
// numbers are milliseconds since the Unix epoch.
func parseDate(v Value) (time.Time, bool) {
	switch v.kind {
	case KindText, KindDateTime, KindDateOnly:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if tm, err := time.Parse(layout, s); err == nil {
				return tm, true
			}
		}
	case KindInteger:
		return time.UnixMilli(v.num).UTC(), true
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(v.flt)).UTC(), true
	}
	return time.Time{}, false
}

func truthy(v Value) bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindInteger:
		return v.num != 0
	case KindFloat:
		return v.flt != 0 && !math.IsNaN(v.flt)
	}
	return v.str != ""
}

// parseNumber reads s the way loose equality coerces strings:
// surrounding whitespace is ignored and the empty string is zero.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
