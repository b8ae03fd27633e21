package recstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONFile persists the registry as one JSON document: table names map to
// arrays of flat record objects, tables in definition order and fields in
// record order, indented by two spaces.
//
//	{
//	  "User": [
//	    {
//	      "id": 1,
//	      "email": "a@b.co"
//	    }
//	  ],
//	  "Habit": []
//	}
type JSONFile struct {
	path string
}

var _ Persister = (*JSONFile)(nil)

// NewJSONFile returns a persister for the document at path. The parent
// directory is created on the first save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the document path.
func (f *JSONFile) Path() string { return f.path }

// Load reads and decodes the document. A missing file is ErrNoSnapshot.
func (f *JSONFile) Load(ctx context.Context) (map[string][]RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return decodeDocument(data)
}

func decodeDocument(data []byte) (map[string][]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string][]RawRecord
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if doc == nil {
		return nil, errors.New("decode snapshot: document is not an object")
	}
	for name, rows := range doc {
		for i, row := range rows {
			if row == nil {
				return nil, fmt.Errorf("decode snapshot: %s[%d] is not an object", name, i)
			}
		}
	}
	return doc, nil
}

// Save writes the document to a temporary file next to the target and
// renames it into place, so readers never observe a partial write.
func (f *JSONFile) Save(ctx context.Context, tables []TableData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeDocument(tables)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmpPath := f.path + ".tmp"

	// Write to temp
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file %s: %w", tmpPath, err)
	}

	// Atomic replace
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file to %s: %w", f.path, err)
	}
	return nil
}

// encodeDocument renders tables in order. encoding/json sorts map keys, so
// the document is assembled by hand and indented afterwards.
func encodeDocument(tables []TableData) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, t := range tables {
		if i > 0 {
			compact.WriteByte(',')
		}
		name, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		compact.Write(name)
		compact.WriteByte(':')

		rows, err := marshalRecords(t.Records)
		if err != nil {
			return nil, fmt.Errorf("encode table %s: %w", t.Name, err)
		}
		compact.Write(rows)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent snapshot: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
