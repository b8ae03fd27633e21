// Package recstore is an embedded record store: schema-typed tables of flat
// records, one-to-many relations resolved at read time, loose filtered queries
// and whole-registry persistence after every mutation.
//
// A Store owns every table of a process. Tables are defined once at startup,
// relations are declared after their tables, and Load restores the persisted
// state:
//
//	store := recstore.New(recstore.NewJSONFile("data/db.json"), recstore.WithLogger(logger))
//	habits := store.Define("Habit", habitSchema)
//	logs := store.Define("HabitLog", habitLogSchema)
//	if err := store.HasMany("Habit", "HabitLog", "habitId"); err != nil {
//	    return err
//	}
//	store.Load(ctx)
//
//	habit, err := habits.Create(ctx, recstore.Data{"name": "Read", "userId": 1})
//	all := habits.FindAll(ctx, recstore.Where{"userId": 1}, "HabitLog")
//
// Concurrency: the in-memory registry is guarded by a mutex so concurrent
// calls are memory safe, but a read followed by a Save is not atomic across
// callers. Only one Store may own a persisted file at a time.
package recstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// ErrTableNotDefined is returned when an operation names a table that was never defined.
var ErrTableNotDefined = errors.New("recstore: table not defined")

// Store is the registry of tables, their schemas and declared relations.
type Store struct {
	mu        sync.RWMutex
	tables    map[string]*Table
	order     []string
	relations map[relationKey]Association
	persister Persister
	obs       *ObservabilityConfig
	now       func() time.Time
}

// New creates an empty store. A nil persister keeps everything in memory.
func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		tables:    make(map[string]*Table),
		relations: make(map[relationKey]Association),
		persister: persister,
		obs:       defaultObservabilityConfig(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithClock replaces the clock used to resolve Now defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Define registers a table and returns its handle. Defining a name again
// replaces the schema and keeps the rows already held for that name.
func (s *Store) Define(name string, schema *Schema) *Table {
	if schema == nil {
		schema = NewSchema()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tables[name]; ok {
		t.schema = schema
		for i, rec := range t.rows {
			t.rows[i] = retype(rec, schema)
		}
		return t
	}

	t := &Table{store: s, name: name, schema: schema}
	s.tables[name] = t
	s.order = append(s.order, name)
	return t
}

// Table returns the handle of a defined table.
func (s *Store) Table(name string) (*Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	return t, ok
}

// TableNames returns the table names in definition order.
func (s *Store) TableNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Load replaces every table with the persisted state. When nothing is
// persisted every table starts empty. A snapshot that cannot be read is
// logged and also leaves every table empty; Load itself never fails the
// startup and only returns ctx errors.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, op := s.begin(ctx, "load", "*")

	var snapshot map[string][]RawRecord
	var loadErr error
	if s.persister != nil {
		snapshot, loadErr = s.persister.Load(ctx)
	}

	s.mu.Lock()
	switch {
	case loadErr == nil:
		s.replaceAllLocked(snapshot)
	case errors.Is(loadErr, ErrNoSnapshot):
		s.replaceAllLocked(nil)
	default:
		s.replaceAllLocked(nil)
		if s.obs.Logger != nil {
			s.obs.Logger.LogAttrs(ctx, slog.LevelError, "persisted store unreadable, starting empty",
				slog.String("error", loadErr.Error()),
			)
		}
	}
	counts := make([]any, 0, len(s.order))
	for _, name := range s.order {
		counts = append(counts, slog.Int(name, len(s.tables[name].rows)))
	}
	s.mu.Unlock()

	op.end(ctx, nil, slog.Group("rows", counts...))
	return nil
}

// replaceAllLocked swaps in the snapshot. Tables present only in the snapshot
// are kept schemaless so a later flush writes them back unchanged.
func (s *Store) replaceAllLocked(snapshot map[string][]RawRecord) {
	for _, name := range s.order {
		t := s.tables[name]
		raws := snapshot[name]
		t.rows = make([]Record, 0, len(raws))
		for _, raw := range raws {
			t.rows = append(t.rows, recordFromRaw(raw, t.schema))
		}
	}

	var extra []string
	for name := range snapshot {
		if _, ok := s.tables[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		t := &Table{store: s, name: name, schema: NewSchema()}
		for _, raw := range snapshot[name] {
			t.rows = append(t.rows, recordFromRaw(raw, t.schema))
		}
		s.tables[name] = t
		s.order = append(s.order, name)
	}
}

// Flush writes the complete registry to the persister.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flushLocked(ctx)
}

func (s *Store) flushLocked(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.saveTo(ctx, s.persister)
}

// flushAfterMutation flushes and reports failure through logs and metrics only;
// the in-memory state stays authoritative until the next successful flush.
func (s *Store) flushAfterMutation(ctx context.Context, table string) {
	if err := s.flushLocked(ctx); err != nil {
		s.flushFailed(ctx, table, err)
	}
}

// Export writes the complete registry to p, leaving the store's own
// persister untouched.
func (s *Store) Export(ctx context.Context, p Persister) error {
	ctx, op := s.begin(ctx, "export", "*")
	s.mu.RLock()
	err := s.saveTo(ctx, p)
	s.mu.RUnlock()
	op.end(ctx, err)
	return err
}

// Import replaces every table with the snapshot held by p and flushes the
// result to the store's own persister. Unlike Load, an unreadable snapshot
// is an error and leaves the store unchanged.
func (s *Store) Import(ctx context.Context, p Persister) error {
	ctx, op := s.begin(ctx, "import", "*")
	snapshot, err := p.Load(ctx)
	if err != nil {
		err = fmt.Errorf("recstore: import: %w", err)
		op.end(ctx, err)
		return err
	}

	s.mu.Lock()
	s.replaceAllLocked(snapshot)
	err = s.flushLocked(ctx)
	s.mu.Unlock()

	op.end(ctx, err)
	return err
}

func (s *Store) saveTo(ctx context.Context, p Persister) error {
	tables := make([]TableData, 0, len(s.order))
	for _, name := range s.order {
		t := s.tables[name]
		tables = append(tables, TableData{Name: name, Schema: t.schema, Records: t.rows})
	}
	if err := p.Save(ctx, tables); err != nil {
		return fmt.Errorf("recstore: flush: %w", err)
	}
	return nil
}
