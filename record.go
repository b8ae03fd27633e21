package recstore

import (
	"bytes"
	"encoding/json"
	"sort"
)

// idColumn is the engine-assigned primary key present on every record.
const idColumn = "id"

// Data is caller input for Create: column name to raw Go scalar.
type Data map[string]any

// Record is one row of a table: an ordered mapping from column name to Value.
//
// Records returned by a Table are copies; mutate them with Set and write them
// back with Table.Save.
type Record struct {
	fields []string
	values map[string]Value

	// related holds child records attached by FindAll includes, keyed by table name.
	related      map[string][]Record
	relatedOrder []string
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{values: make(map[string]Value)}
}

// ID returns the record id, or 0 when the record has none.
func (r Record) ID() int64 {
	id, _ := r.values[idColumn].Int()
	return id
}

// Get returns the value of a field and whether the field is present.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns the value of a field, null when absent.
func (r Record) Value(name string) Value {
	return r.values[name]
}

// Set stores x under name without casting. Table.Save casts schema columns.
func (r *Record) Set(name string, x any) {
	r.put(name, ValueOf(x))
}

func (r *Record) put(name string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[name]; !ok {
		r.fields = append(r.fields, name)
	}
	r.values[name] = v
}

// Delete removes a field from the record.
func (r *Record) Delete(name string) {
	if _, ok := r.values[name]; !ok {
		return
	}
	delete(r.values, name)
	for i, f := range r.fields {
		if f == name {
			r.fields = append(r.fields[:i:i], r.fields[i+1:]...)
			break
		}
	}
}

// Fields returns the field names in order.
func (r Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Related returns the child records attached by an include.
// The plural alias (name + "s") resolves to the same records.
func (r Record) Related(name string) ([]Record, bool) {
	if rel, ok := r.related[name]; ok {
		return rel, true
	}
	for _, key := range r.relatedOrder {
		if key+"s" == name {
			return r.related[key], true
		}
	}
	return nil, false
}

func (r *Record) attach(name string, children []Record) {
	if r.related == nil {
		r.related = make(map[string][]Record)
	}
	if _, ok := r.related[name]; !ok {
		r.relatedOrder = append(r.relatedOrder, name)
	}
	r.related[name] = children
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	c := Record{
		fields: append([]string(nil), r.fields...),
		values: make(map[string]Value, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = v
	}
	if len(r.related) > 0 {
		c.related = make(map[string][]Record, len(r.related))
		c.relatedOrder = append([]string(nil), r.relatedOrder...)
		for k, children := range r.related {
			cc := make([]Record, len(children))
			for i, child := range children {
				cc[i] = child.Clone()
			}
			c.related[k] = cc
		}
	}
	return c
}

// stored returns the persisted shape of the record: fields only, no includes.
func (r Record) stored() Record {
	c := r.Clone()
	c.related = nil
	c.relatedOrder = nil
	return c
}

// Map returns the fields as plain Go scalars.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v.Any()
	}
	return m
}

// MarshalJSON encodes the record as a flat object in field order. Included
// children follow the fields under the table name and its plural alias.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]bool, len(r.fields))
	first := true
	writeKey := func(k string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		return nil
	}

	for _, f := range r.fields {
		if err := writeKey(f); err != nil {
			return nil, err
		}
		vb, err := r.values[f].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
		seen[f] = true
	}

	for _, name := range r.relatedOrder {
		children := r.related[name]
		for _, key := range []string{name, name + "s"} {
			if seen[key] {
				continue
			}
			seen[key] = true
			if err := writeKey(key); err != nil {
				return nil, err
			}
			cb, err := marshalRecords(children)
			if err != nil {
				return nil, err
			}
			buf.Write(cb)
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalRecords(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := rec.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// recordFromRaw types a persisted row. Field order is id, then schema columns,
// then any remaining keys sorted by name.
func recordFromRaw(raw RawRecord, schema *Schema) Record {
	rec := NewRecord()
	if v, ok := raw[idColumn]; ok {
		rec.put(idColumn, decodeValue(v, nil))
	}
	for _, c := range schema.Columns() {
		if c.Name == idColumn {
			continue
		}
		if v, ok := raw[c.Name]; ok {
			col := c
			rec.put(c.Name, decodeValue(v, &col))
		}
	}

	var extra []string
	for k := range raw {
		if k == idColumn || schema.Has(k) {
			continue
		}
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		rec.put(k, decodeValue(raw[k], nil))
	}
	return rec
}

// retype re-tags the schema columns of an already loaded record, used when a
// table is defined after its rows were loaded.
func retype(rec Record, schema *Schema) Record {
	out := NewRecord()
	for _, f := range rec.fields {
		v := rec.values[f]
		if c, ok := schema.Column(f); ok && f != idColumn {
			v = decodeValue(v.Any(), &c)
		}
		out.put(f, v)
	}
	return out
}
