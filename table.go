// This file implements the Table type, the record store engine.
//
// Table provides every operation a consumer performs on one record table:
//   - Create (Create)
//   - Read (FindOne, FindAll, FindByID, Len)
//   - Update (Save)
//   - Delete (Destroy)
//   - Relation traversal (Children, Parent) in relation.go
//   - Lifecycle hooks (Use) in hooks.go
//
// Read paths never fail: absence is an empty result. Mutations write the
// whole registry to the persister before returning.
package recstore

import (
	"context"
	"log/slog"
	"sort"
)

// Table is the handle of one defined table.
//
// Usage example:
//
//	moods := store.Define("Mood", moodSchema)
//
//	// Create record
//	mood, err := moods.Create(ctx, recstore.Data{"userId": 1, "mood": "Happy", "date": "2024-03-15"})
//	fmt.Println("Created mood ID:", mood.ID()) // Engine-assigned id
//
//	// Query records
//	today, ok := moods.FindOne(ctx, recstore.Where{"userId": 1, "date": time.Now()})
//
//	// Update record
//	mood.Set("note", "after a run")
//	err = moods.Save(ctx, &mood)
//
//	// Delete record
//	err = moods.Destroy(ctx, mood)
type Table struct {
	store  *Store
	name   string
	schema *Schema
	rows   []Record
	hooks  []Hooks
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Schema returns the table schema.
func (t *Table) Schema() *Schema {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.schema
}

// Len returns the number of stored records.
func (t *Table) Len() int {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return len(t.rows)
}

// Create inserts a new record built from data and returns it.
//
// Record construction:
//   - id: max(existing ids, 0) + 1; ids freed by Destroy are reused only
//     when they are above every remaining id
//   - Schema columns, in schema order: the value from data, else the column
//     default (Now resolves to the store clock), else null; then cast to the
//     column type
//   - Keys of data outside the schema: copied uncast, sorted by name
//   - An id in data is ignored
//
// Create performs no validation and no uniqueness checks; callers use
// Schema.MissingRequired and FindOne for that. A BeforeCreate hook error
// aborts the insert. A failed flush is logged and counted but does not fail
// Create: the record is stored in memory.
//
// Example:
//
//	habit, err := habits.Create(ctx, recstore.Data{
//	    "userId":    user.ID(),
//	    "name":      "Drink water",
//	    "frequency": "daily",
//	})
func (t *Table) Create(ctx context.Context, data Data) (Record, error) {
	ctx, op := t.store.begin(ctx, "create", t.name)
	hooks := t.registeredHooks()

	rec := t.build(data)
	if err := trigger(ctx, hooks, beforeCreate, &rec); err != nil {
		op.end(ctx, err)
		return Record{}, err
	}

	t.store.mu.Lock()
	t.castFields(&rec)
	id := t.nextIDLocked()
	rec.put(idColumn, Integer(id))
	t.rows = append(t.rows, rec.stored())
	t.store.flushAfterMutation(ctx, t.name)
	t.store.mu.Unlock()

	err := trigger(ctx, hooks, afterCreate, &rec)
	op.end(ctx, err, slog.Int64("id", id))
	return rec, err
}

// build assembles a record from caller data. The id slot is reserved first
// so it leads the field order.
func (t *Table) build(data Data) Record {
	rec := NewRecord()
	rec.put(idColumn, Null())

	schema := t.Schema()
	for _, c := range schema.Columns() {
		if c.Name == idColumn {
			continue
		}
		raw, ok := data[c.Name]
		v := ValueOf(raw)
		if !ok && c.HasDefault() {
			if _, isNow := c.Default.(nowDefault); isNow {
				v = DateTime(t.store.now())
			} else {
				v = ValueOf(c.Default)
			}
		}
		v, _ = Cast(v, c.Type)
		rec.put(c.Name, v)
	}

	extra := make([]string, 0, len(data))
	for k := range data {
		if k == idColumn || schema.Has(k) {
			continue
		}
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		rec.put(k, ValueOf(data[k]))
	}
	return rec
}

// castFields casts every schema column present on rec to its column type.
func (t *Table) castFields(rec *Record) {
	for _, f := range rec.fields {
		if f == idColumn {
			continue
		}
		if c, ok := t.schema.Column(f); ok {
			rec.values[f], _ = Cast(rec.values[f], c.Type)
		}
	}
}

func (t *Table) nextIDLocked() int64 {
	var maxID int64
	for _, row := range t.rows {
		if id, ok := toInt64(row.Value(idColumn)); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// FindOne returns the first record, in insertion order, matching where.
//
// Matching rules (see Where):
//   - Scalar entries compare with loose equality: 5 == "5", 1 == true
//   - DATEONLY columns reduce both sides to YYYY-MM-DD first
//   - time.Time values compare by instant
//   - Structured predicates are ignored and match everything
//
// A nil or empty where matches every record.
func (t *Table) FindOne(ctx context.Context, where Where) (Record, bool) {
	ctx, op := t.store.begin(ctx, "findOne", t.name)
	t.reportUnsupported(ctx, where)

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	for _, row := range t.rows {
		if where.Evaluate(t.schema, row).OK() {
			op.end(ctx, nil, slog.Bool("found", true))
			return row.Clone(), true
		}
	}
	op.end(ctx, nil, slog.Bool("found", false))
	return Record{}, false
}

// FindAll returns every record matching where, in insertion order.
//
// Each include names a child table. When a HasMany relation from this table
// to the child is declared, every returned record carries the child rows
// whose foreign key equals its id (Record.Related). Undeclared includes are
// ignored.
//
// Example:
//
//	habits := habitTable.FindAll(ctx, recstore.Where{"userId": userID}, "HabitLog")
//	for _, h := range habits {
//	    logs, _ := h.Related("HabitLog")
//	    fmt.Println(h.Value("name"), len(logs))
//	}
func (t *Table) FindAll(ctx context.Context, where Where, include ...string) []Record {
	ctx, op := t.store.begin(ctx, "findAll", t.name)
	t.reportUnsupported(ctx, where)

	t.store.mu.RLock()
	out := make([]Record, 0)
	for _, row := range t.rows {
		if where.Evaluate(t.schema, row).OK() {
			out = append(out, row.Clone())
		}
	}
	if len(include) > 0 && len(out) > 0 {
		t.store.preloadLocked(t.name, out, include)
	}
	t.store.mu.RUnlock()

	op.end(ctx, nil, slog.Int("count", len(out)))
	return out
}

// FindByID returns the record whose id loosely equals id, so "5" finds 5.
func (t *Table) FindByID(ctx context.Context, id any) (Record, bool) {
	ctx, op := t.store.begin(ctx, "findById", t.name)
	want := ValueOf(id)

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	for _, row := range t.rows {
		if looseEqual(row.Value(idColumn), want) {
			op.end(ctx, nil, slog.Bool("found", true))
			return row.Clone(), true
		}
	}
	op.end(ctx, nil, slog.Bool("found", false))
	return Record{}, false
}

// Save writes rec back over the stored record with the same id.
//
// Every schema column present on rec is cast to its column type, the stored
// row is replaced at its position and the registry is flushed. Related
// records attached by FindAll are not stored. When no stored record has the
// id, Save does nothing, runs no hooks and returns nil.
//
// Example:
//
//	user, _ := users.FindByID(ctx, 1)
//	user.Set("isVerified", true)
//	user.Set("otp", nil)
//	if err := users.Save(ctx, &user); err != nil {
//	    return err
//	}
func (t *Table) Save(ctx context.Context, rec *Record) error {
	ctx, op := t.store.begin(ctx, "save", t.name)
	id := rec.Value(idColumn)

	if !t.exists(id) {
		op.end(ctx, nil, slog.String("id", id.String()), slog.Bool("found", false))
		return nil
	}

	hooks := t.registeredHooks()
	if err := trigger(ctx, hooks, beforeSave, rec); err != nil {
		op.end(ctx, err)
		return err
	}

	t.store.mu.Lock()
	idx := t.indexLocked(id)
	if idx < 0 {
		t.store.mu.Unlock()
		op.end(ctx, nil, slog.String("id", id.String()), slog.Bool("found", false))
		return nil
	}
	t.castFields(rec)
	t.rows[idx] = rec.stored()
	t.store.flushAfterMutation(ctx, t.name)
	t.store.mu.Unlock()

	err := trigger(ctx, hooks, afterSave, rec)
	op.end(ctx, err, slog.String("id", id.String()))
	return err
}

// Destroy removes the stored record with the id of rec. When no stored
// record has the id, Destroy does nothing and returns nil.
func (t *Table) Destroy(ctx context.Context, rec Record) error {
	ctx, op := t.store.begin(ctx, "destroy", t.name)
	id := rec.Value(idColumn)

	if !t.exists(id) {
		op.end(ctx, nil, slog.String("id", id.String()), slog.Bool("found", false))
		return nil
	}

	hooks := t.registeredHooks()
	if err := trigger(ctx, hooks, beforeDestroy, &rec); err != nil {
		op.end(ctx, err)
		return err
	}

	t.store.mu.Lock()
	idx := t.indexLocked(id)
	if idx < 0 {
		t.store.mu.Unlock()
		op.end(ctx, nil, slog.String("id", id.String()), slog.Bool("found", false))
		return nil
	}
	t.rows = append(t.rows[:idx:idx], t.rows[idx+1:]...)
	t.store.flushAfterMutation(ctx, t.name)
	t.store.mu.Unlock()

	err := trigger(ctx, hooks, afterDestroy, &rec)
	op.end(ctx, err, slog.String("id", id.String()))
	return err
}

func (t *Table) exists(id Value) bool {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.indexLocked(id) >= 0
}

// indexLocked finds the row whose id strictly equals id.
func (t *Table) indexLocked(id Value) int {
	if id.IsNull() {
		return -1
	}
	for i, row := range t.rows {
		if row.Value(idColumn).Equal(id) {
			return i
		}
	}
	return -1
}

func (t *Table) reportUnsupported(ctx context.Context, where Where) {
	for _, u := range where.unsupported() {
		t.store.unsupportedPredicate(ctx, t.name, u[0], u[1])
	}
}
