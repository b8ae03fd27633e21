package recstore

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// RelationKind defines the direction of a declared relationship.
type RelationKind int

const (
	// HasMany indicates a 1:N relationship (parent has many children)
	HasMany RelationKind = iota
	// BelongsTo indicates the inverse N:1 relationship (child belongs to parent)
	BelongsTo
)

func (k RelationKind) String() string {
	switch k {
	case HasMany:
		return "hasMany"
	case BelongsTo:
		return "belongsTo"
	}
	return "RelationKind(" + strconv.Itoa(int(k)) + ")"
}

// Association is a declared relationship between two tables.
//
// For HasMany, Source is the parent and Target the child; for BelongsTo,
// Source is the child and Target the parent. ForeignKey is always the column
// on the child table holding the parent id.
type Association struct {
	Source     string
	Kind       RelationKind
	Target     string
	ForeignKey string
}

type relationKey struct {
	source string
	kind   RelationKind
	target string
}

// HasMany declares that each parent row owns the child rows whose foreignKey
// equals its id. Both tables must already be defined.
func (s *Store) HasMany(parent, child, foreignKey string) error {
	return s.declare(Association{Source: parent, Kind: HasMany, Target: child, ForeignKey: foreignKey})
}

// BelongsTo declares that each child row refers to one parent through
// foreignKey. Both tables must already be defined.
func (s *Store) BelongsTo(child, parent, foreignKey string) error {
	return s.declare(Association{Source: child, Kind: BelongsTo, Target: parent, ForeignKey: foreignKey})
}

func (s *Store) declare(a Association) error {
	if strings.TrimSpace(a.ForeignKey) == "" {
		return fmt.Errorf("recstore: %s %s %s: empty foreign key", a.Source, a.Kind, a.Target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{a.Source, a.Target} {
		if _, ok := s.tables[name]; !ok {
			return fmt.Errorf("%w: %q (declaring %s %s %s)", ErrTableNotDefined, name, a.Source, a.Kind, a.Target)
		}
	}
	s.relations[relationKey{a.Source, a.Kind, a.Target}] = a
	return nil
}

// Relation looks up a declared association. A missing relation is reported
// with false and means "include nothing".
func (s *Store) Relation(source string, kind RelationKind, target string) (Association, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.relations[relationKey{source, kind, target}]
	return a, ok
}

// Children returns the rows of child that belong to rec through a declared
// HasMany relation, in child insertion order.
func (t *Table) Children(ctx context.Context, rec Record, child string) []Record {
	ctx, op := t.store.begin(ctx, "children", t.name)

	t.store.mu.RLock()
	children := t.store.childrenLocked(t.name, child, []Record{rec})
	t.store.mu.RUnlock()

	var out []Record
	if children != nil {
		out = children[recordKey(rec)]
		if out == nil {
			out = []Record{}
		}
	}
	op.end(ctx, nil, slog.String("child", child), slog.Int("count", len(out)))
	return out
}

// Parent resolves the row of parent that rec refers to through a declared
// BelongsTo relation.
func (t *Table) Parent(ctx context.Context, rec Record, parent string) (Record, bool) {
	ctx, op := t.store.begin(ctx, "parent", t.name)

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	a, ok := t.store.relations[relationKey{t.name, BelongsTo, parent}]
	if !ok {
		op.end(ctx, nil, slog.String("parent", parent), slog.Bool("declared", false))
		return Record{}, false
	}
	fk, ok := toInt64(rec.Value(a.ForeignKey))
	if !ok {
		op.end(ctx, nil, slog.String("parent", parent), slog.Bool("found", false))
		return Record{}, false
	}
	for _, row := range t.store.tables[parent].rows {
		if id, ok := toInt64(row.Value(idColumn)); ok && id == fk {
			op.end(ctx, nil, slog.String("parent", parent), slog.Bool("found", true))
			return row.Clone(), true
		}
	}
	op.end(ctx, nil, slog.String("parent", parent), slog.Bool("found", false))
	return Record{}, false
}

// childrenLocked groups the rows of child by the parent they belong to.
// It returns nil when no HasMany relation from parent to child is declared.
// The caller holds s.mu.
func (s *Store) childrenLocked(parent, child string, parents []Record) map[int64][]Record {
	a, ok := s.relations[relationKey{parent, HasMany, child}]
	if !ok {
		return nil
	}
	childTable, ok := s.tables[child]
	if !ok {
		return nil
	}

	wanted := make(map[int64]bool, len(parents))
	for _, p := range parents {
		wanted[recordKey(p)] = true
	}

	// Build child map: FK value -> children
	childMap := make(map[int64][]Record, len(parents))
	for _, row := range childTable.rows {
		fk, ok := toInt64(row.Value(a.ForeignKey))
		if !ok || !wanted[fk] {
			continue
		}
		childMap[fk] = append(childMap[fk], row.Clone())
	}
	return childMap
}

// preloadLocked attaches the children of every declared include to parents.
// Parents without children get an empty list. The caller holds s.mu.
func (s *Store) preloadLocked(parent string, parents []Record, includes []string) {
	for _, inc := range includes {
		childMap := s.childrenLocked(parent, inc, parents)
		if childMap == nil {
			continue
		}
		for i := range parents {
			children := childMap[recordKey(parents[i])]
			if children == nil {
				children = []Record{}
			}
			parents[i].attach(inc, children)
		}
	}
}

// recordKey is the id of rec normalised for map lookups, -1 when missing.
func recordKey(rec Record) int64 {
	if id, ok := toInt64(rec.Value(idColumn)); ok {
		return id
	}
	return -1
}
