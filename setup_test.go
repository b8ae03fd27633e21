package recstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fixedNow is the clock of every test store.
var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// memoryPersister keeps the last saved snapshot in memory.
type memoryPersister struct {
	mu      sync.Mutex
	tables  map[string][]RawRecord
	saves   int
	saveErr error
	loadErr error
}

func (m *memoryPersister) Load(ctx context.Context) (map[string][]RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.tables == nil {
		return nil, ErrNoSnapshot
	}
	return m.tables, nil
}

func (m *memoryPersister) Save(ctx context.Context, tables []TableData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tables = make(map[string][]RawRecord, len(tables))
	for _, t := range tables {
		rows := make([]RawRecord, 0, len(t.Records))
		for _, rec := range t.Records {
			rows = append(rows, RawRecord(rec.Map()))
		}
		m.tables[t.Name] = rows
	}
	return nil
}

func (m *memoryPersister) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var errBoom = errors.New("boom")

func newTestStore(t *testing.T, p Persister, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(p, opts...)
}

func widgetSchema() *Schema {
	return NewSchema(
		Column{Name: "id", Type: TypeInteger, PrimaryKey: true, AutoIncrement: true},
		Column{Name: "name", Type: TypeText, NotNull: true},
		Column{Name: "count", Type: TypeInteger},
		Column{Name: "createdAt", Type: TypeDateTime, Default: Now},
	)
}

func parentSchema() *Schema {
	return NewSchema(
		Column{Name: "id", Type: TypeInteger, PrimaryKey: true},
		Column{Name: "name", Type: TypeText},
	)
}

func childSchema() *Schema {
	return NewSchema(
		Column{Name: "id", Type: TypeInteger, PrimaryKey: true},
		Column{Name: "label", Type: TypeText},
		Column{Name: "parentId", Type: TypeInteger},
	)
}

func ids(records []Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID()
	}
	return out
}
