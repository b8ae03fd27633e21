package recstore

import (
	"context"
)

// Hook runs around a table mutation. Before hooks may modify the record;
// their error aborts the operation before anything is stored.
type Hook func(ctx context.Context, rec *Record) error

// Hooks groups the lifecycle callbacks of a table. Nil fields are skipped.
//
// BeforeCreate sees the record before its id is assigned. After hooks run
// once the row is stored and flushed; their error is returned to the caller
// but the mutation stays committed.
type Hooks struct {
	BeforeCreate  Hook
	AfterCreate   Hook
	BeforeSave    Hook
	AfterSave     Hook
	BeforeDestroy Hook
	AfterDestroy  Hook
}

// Use registers lifecycle hooks on the table. Hooks registered by separate
// calls run in registration order.
func (t *Table) Use(h Hooks) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.hooks = append(t.hooks, h)
}

func (t *Table) registeredHooks() []Hooks {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.hooks
}

type hookSelector func(Hooks) Hook

func beforeCreate(h Hooks) Hook  { return h.BeforeCreate }
func afterCreate(h Hooks) Hook   { return h.AfterCreate }
func beforeSave(h Hooks) Hook    { return h.BeforeSave }
func afterSave(h Hooks) Hook     { return h.AfterSave }
func beforeDestroy(h Hooks) Hook { return h.BeforeDestroy }
func afterDestroy(h Hooks) Hook  { return h.AfterDestroy }

// trigger runs the selected hook of every registration, stopping at the first error.
func trigger(ctx context.Context, hooks []Hooks, sel hookSelector, rec *Record) error {
	for _, h := range hooks {
		if fn := sel(h); fn != nil {
			if err := fn(ctx, rec); err != nil {
				return err
			}
		}
	}
	return nil
}
