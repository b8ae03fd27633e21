package recstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooksRunInOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)
	widgets := store.Define("Widget", widgetSchema())

	var calls []string
	record := func(name string) Hook {
		return func(ctx context.Context, rec *Record) error {
			calls = append(calls, name)
			return nil
		}
	}
	widgets.Use(Hooks{
		BeforeCreate:  record("beforeCreate"),
		AfterCreate:   record("afterCreate"),
		BeforeSave:    record("beforeSave"),
		AfterSave:     record("afterSave"),
		BeforeDestroy: record("beforeDestroy"),
		AfterDestroy:  record("afterDestroy"),
	})
	widgets.Use(Hooks{BeforeCreate: record("beforeCreate2")})

	rec, err := widgets.Create(ctx, Data{"name": "a"})
	require.NoError(t, err)
	require.NoError(t, widgets.Save(ctx, &rec))
	require.NoError(t, widgets.Destroy(ctx, rec))

	assert.Equal(t, []string{
		"beforeCreate", "beforeCreate2", "afterCreate",
		"beforeSave", "afterSave",
		"beforeDestroy", "afterDestroy",
	}, calls)
}

func TestBeforeHookModifiesRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)
	widgets := store.Define("Widget", widgetSchema())
	widgets.Use(Hooks{
		BeforeCreate: func(ctx context.Context, rec *Record) error {
			assert.True(t, rec.Value("id").IsNull(), "id is assigned after BeforeCreate")
			name, _ := rec.Value("name").Str()
			rec.Set("name", strings.ToUpper(name))
			rec.Set("count", "7")
			return nil
		},
	})

	rec, err := widgets.Create(ctx, Data{"name": "a"})
	require.NoError(t, err)
	stored, _ := widgets.FindByID(ctx, rec.ID())
	assert.Equal(t, "A", stored.Value("name").String())
	assert.True(t, Text("7").Equal(stored.Value("count")), "integer columns pass through")
}

func TestBeforeHookAborts(t *testing.T) {
	ctx := context.Background()
	p := &memoryPersister{}
	store := newTestStore(t, p)
	widgets := store.Define("Widget", widgetSchema())

	rec, err := widgets.Create(ctx, Data{"name": "a"})
	require.NoError(t, err)

	widgets.Use(Hooks{
		BeforeCreate:  func(context.Context, *Record) error { return errBoom },
		BeforeSave:    func(context.Context, *Record) error { return errBoom },
		BeforeDestroy: func(context.Context, *Record) error { return errBoom },
	})

	_, err = widgets.Create(ctx, Data{"name": "b"})
	assert.ErrorIs(t, err, errBoom)

	rec.Set("name", "changed")
	assert.ErrorIs(t, widgets.Save(ctx, &rec), errBoom)
	assert.ErrorIs(t, widgets.Destroy(ctx, rec), errBoom)

	stored, ok := widgets.FindByID(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "a", stored.Value("name").String())
	assert.Equal(t, 1, widgets.Len())
	assert.Equal(t, 1, p.saveCount())
}

func TestAfterHookErrorKeepsMutation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)
	widgets := store.Define("Widget", widgetSchema())
	widgets.Use(Hooks{
		AfterCreate: func(context.Context, *Record) error { return errBoom },
	})

	rec, err := widgets.Create(ctx, Data{"name": "a"})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, int64(1), rec.ID())
	assert.Equal(t, 1, widgets.Len())
}

func TestHooksSkippedForUnknownID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)
	widgets := store.Define("Widget", widgetSchema())

	called := false
	widgets.Use(Hooks{
		BeforeSave:    func(context.Context, *Record) error { called = true; return nil },
		BeforeDestroy: func(context.Context, *Record) error { called = true; return nil },
	})

	ghost := NewRecord()
	ghost.Set("id", 9)
	require.NoError(t, widgets.Save(ctx, &ghost))
	require.NoError(t, widgets.Destroy(ctx, ghost))
	assert.False(t, called)
}

func TestHookCanCallStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)
	widgets := store.Define("Widget", widgetSchema())
	audit := store.Define("Audit", NewSchema(Column{Name: "widgetId", Type: TypeInteger}))

	widgets.Use(Hooks{
		AfterCreate: func(ctx context.Context, rec *Record) error {
			_, err := audit.Create(ctx, Data{"widgetId": rec.ID()})
			return err
		},
	})

	_, err := widgets.Create(ctx, Data{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, audit.Len())
}
