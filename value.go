package recstore

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Kind tags the semantic type carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindFloat
	KindBoolean
	KindDateTime
	KindDateOnly
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDateTime:
		return "datetime"
	case KindDateOnly:
		return "dateonly"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single cell of a Record.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Integer returns an integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, num: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// DateTime returns a date-time value in canonical ISO-8601 form (UTC, millisecond precision).
func DateTime(t time.Time) Value {
	return Value{kind: KindDateTime, str: t.UTC().Format(dateTimeLayout)}
}

// DateOnly returns a date value in canonical YYYY-MM-DD form (UTC calendar day).
func DateOnly(t time.Time) Value {
	return Value{kind: KindDateOnly, str: t.UTC().Format(dateOnlyLayout)}
}

// ValueOf converts a Go scalar into a Value.
// Supported inputs are nil, Value, string, []byte, bool, every integer and float type,
// json.Number and time.Time; pointers are dereferenced and named scalar types are read by
// their underlying kind. Integers above MaxInt64 become floats. Anything else is rendered as text.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		return Text(v)
	case []byte:
		return Text(string(v))
	case bool:
		return Bool(v)
	case int:
		return Integer(int64(v))
	case int8:
		return Integer(int64(v))
	case int16:
		return Integer(int64(v))
	case int32:
		return Integer(int64(v))
	case int64:
		return Integer(v)
	case uint:
		return unsigned(uint64(v))
	case uint8:
		return Integer(int64(v))
	case uint16:
		return Integer(int64(v))
	case uint32:
		return Integer(int64(v))
	case uint64:
		return unsigned(v)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Integer(i)
		}
		if f, err := v.Float64(); err == nil {
			return Float(f)
		}
		return Text(v.String())
	case time.Time:
		return DateTime(v)
	}

	// Named scalar types such as type Score int.
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return Null()
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsigned(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return Text(rv.String())
	}
	if s, ok := x.(fmt.Stringer); ok {
		return Text(s.String())
	}
	return Text(fmt.Sprint(x))
}

// unsigned keeps values above MaxInt64 as floats instead of wrapping them.
func unsigned(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Integer(int64(u))
}

// Kind reports the semantic type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload of text, date-time and date values.
func (v Value) Str() (string, bool) {
	switch v.kind {
	case KindText, KindDateTime, KindDateOnly:
		return v.str, true
	}
	return "", false
}

// Int returns the payload of integer values and of floats holding a whole number.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.num, true
	case KindFloat:
		if v.flt == math.Trunc(v.flt) && !math.IsInf(v.flt, 0) {
			return int64(v.flt), true
		}
	}
	return 0, false
}

// Float returns the numeric payload of integer and float values.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.num), true
	case KindFloat:
		return v.flt, true
	}
	return 0, false
}

// Bool returns the payload of boolean values.
func (v Value) Bool() (bool, bool) {
	if v.kind == KindBoolean {
		return v.b, true
	}
	return false, false
}

// Any returns the plain Go scalar held by v: nil, string, int64, float64 or bool.
func (v Value) Any() any {
	switch v.kind {
	case KindText, KindDateTime, KindDateOnly:
		return v.str
	case KindInteger:
		return v.num
	case KindFloat:
		return v.flt
	case KindBoolean:
		return v.b
	}
	return nil
}

// Equal reports strict equality: same kind and same payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInteger:
		return v.num == o.num
	case KindFloat:
		return v.flt == o.flt
	case KindBoolean:
		return v.b == o.b
	}
	return v.str == o.str
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	}
	return v.str
}

// MarshalJSON encodes v as a JSON scalar. Non-finite floats become null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.flt)
	}
	return json.Marshal(v.Any())
}

// numeric converts v to a number using loose-equality coercion rules:
// booleans become 0/1 and strings are parsed as decimal numbers ("" is 0).
func (v Value) numeric() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.num), true
	case KindFloat:
		if math.IsNaN(v.flt) {
			return 0, false
		}
		return v.flt, true
	case KindBoolean:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindText, KindDateTime, KindDateOnly:
		return parseNumber(v.str)
	}
	return 0, false
}
