package recstore

import (
	"context"
	"errors"
	"time"
)

// ErrNoSnapshot is returned by a Persister when nothing has been persisted yet.
var ErrNoSnapshot = errors.New("recstore: no snapshot")

// RawRecord is a persisted row before typing: field name to plain scalar
// (nil, string, bool, int64, float64 or json.Number).
type RawRecord map[string]any

// TableData is one table handed to a Persister on flush.
type TableData struct {
	Name    string
	Schema  *Schema
	Records []Record
}

// Persister stores and restores the complete registry.
//
// Save receives every table in definition order and must replace whatever
// was stored before. Load returns ErrNoSnapshot when nothing is stored.
type Persister interface {
	Load(ctx context.Context) (map[string][]RawRecord, error)
	Save(ctx context.Context, tables []TableData) error
}

// decodeValue types a persisted scalar. With a column it restores the kind the
// column was cast to; strings that are not in canonical date form stay text so
// pass-through values survive a round trip unchanged.
func decodeValue(raw any, col *Column) Value {
	v := ValueOf(raw)
	if col == nil || v.IsNull() {
		return v
	}

	switch col.Type {
	case TypeFloat:
		if v.kind == KindInteger {
			return Float(float64(v.num))
		}
	case TypeInteger:
		if i, ok := v.Int(); ok && v.kind == KindFloat {
			return Integer(i)
		}
	case TypeBoolean:
		if v.kind == KindInteger && (v.num == 0 || v.num == 1) {
			return Bool(v.num == 1)
		}
	case TypeDateOnly:
		if s, ok := v.Str(); ok {
			if tm, err := time.Parse(dateOnlyLayout, s); err == nil && tm.Format(dateOnlyLayout) == s {
				return Value{kind: KindDateOnly, str: s}
			}
			return Text(s)
		}
	case TypeDateTime:
		if s, ok := v.Str(); ok {
			if tm, err := time.Parse(dateTimeLayout, s); err == nil && tm.UTC().Format(dateTimeLayout) == s {
				return Value{kind: KindDateTime, str: s}
			}
			return Text(s)
		}
	}
	return v
}
