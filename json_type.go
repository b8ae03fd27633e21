package recstore

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonText stores a Go value as JSON in a TEXT column.
// It implements sql.Scanner and driver.Valuer.
//
// Numbers are decoded as json.Number so integers survive the round trip.
type jsonText[T any] struct {
	Data T
}

// Scan implements the sql.Scanner interface.
func (j *jsonText[T]) Scan(value any) error {
	var zero T
	j.Data = zero
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("recstore: scan JSON column: expected []byte or string, got %T", value)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(&j.Data)
}

// Value implements the driver.Valuer interface. The payload is written as
// text so SQLite keeps TEXT affinity.
func (j jsonText[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// sqliteExtra carries what the typed columns of a snapshot table cannot:
// fields outside the schema, values whose kind does not fit their column,
// and schema columns the record does not have at all.
type sqliteExtra struct {
	Fields map[string]Value `json:"fields,omitempty"`
	Absent []string         `json:"absent,omitempty"`
}

// sqliteExtraIn is the decoded form of sqliteExtra.
type sqliteExtraIn struct {
	Fields map[string]any `json:"fields,omitempty"`
	Absent []string       `json:"absent,omitempty"`
}

func (e sqliteExtra) empty() bool {
	return len(e.Fields) == 0 && len(e.Absent) == 0
}
