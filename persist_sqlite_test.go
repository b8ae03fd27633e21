package recstore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSnapshot(t *testing.T) *SQLiteSnapshot {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	p := NewSQLiteSnapshot(db)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestSQLiteSnapshotEmpty(t *testing.T) {
	_, err := openSnapshot(t).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSQLiteSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()

	// Rows a schema-typed table cannot hold in its typed columns.
	source := newTestStore(t, &memoryPersister{tables: map[string][]RawRecord{
		"Widget": {
			{"id": int64(1), "name": "a", "count": int64(1), "createdAt": "2024-03-15T10:30:00.000Z"},
			{"id": int64(2), "name": "b", "count": "12abc", "createdAt": "not-a-date", "tags": "x"},
			{"id": int64(3), "name": nil},
		},
		"Legacy": {
			{"id": int64(1), "kind": "old", "n": 2.5, "ok": true},
		},
	}})
	source.Define("Widget", widgetSchema())
	source.Define("Flags", NewSchema(
		Column{Name: "id", Type: TypeInteger},
		Column{Name: "on", Type: TypeBoolean},
		Column{Name: "ratio", Type: TypeFloat},
		Column{Name: "day", Type: TypeDateOnly},
	))
	require.NoError(t, source.Load(ctx))

	flags, _ := source.Table("Flags")
	_, err := flags.Create(ctx, Data{"on": true, "ratio": 0.5, "day": "2024-03-15"})
	require.NoError(t, err)
	_, err = flags.Create(ctx, Data{"on": false, "ratio": 3.0})
	require.NoError(t, err)

	snap := openSnapshot(t)
	require.NoError(t, source.Export(ctx, snap))

	target := newTestStore(t, nil)
	target.Define("Widget", widgetSchema())
	target.Define("Flags", flags.Schema())
	require.NoError(t, target.Import(ctx, snap))

	assert.Equal(t, []string{"Widget", "Flags", "Legacy"}, target.TableNames())
	assertSameTables(t, source, target)

	third, _ := target.Table("Widget")
	rec, ok := third.FindByID(ctx, 3)
	require.True(t, ok)
	_, present := rec.Get("count")
	assert.False(t, present, "absent fields stay absent")
}

func TestSQLiteSnapshotReplacesPreviousSave(t *testing.T) {
	ctx := context.Background()
	snap := openSnapshot(t)
	schema := NewSchema(Column{Name: "id", Type: TypeInteger}, Column{Name: "v", Type: TypeText})

	first := newTestStore(t, snap)
	a := first.Define("A", schema)
	first.Define("B", schema)
	_, err := a.Create(ctx, Data{"v": "one"})
	require.NoError(t, err)

	second := newTestStore(t, snap)
	c := second.Define("C", schema)
	_, err = c.Create(ctx, Data{"v": "two"})
	require.NoError(t, err)

	doc, err := snap.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc, 1)
	require.Len(t, doc["C"], 1)
	assert.Equal(t, "two", doc["C"][0]["v"])
}

func TestSQLiteSnapshotChunksLargeTables(t *testing.T) {
	ctx := context.Background()
	schema := widgetSchema()

	records := make([]Record, 0, 1000)
	for i := 1; i <= 1000; i++ {
		rec := NewRecord()
		rec.put("id", Integer(int64(i)))
		rec.put("name", Text(fmt.Sprintf("w%d", i)))
		rec.put("count", Integer(int64(i*2)))
		rec.put("createdAt", DateTime(fixedNow))
		records = append(records, rec)
	}

	snap := openSnapshot(t)
	require.NoError(t, snap.Save(ctx, []TableData{{Name: "Widget", Schema: schema, Records: records}}))

	doc, err := snap.Load(ctx)
	require.NoError(t, err)
	rows := doc["Widget"]
	require.Len(t, rows, 1000)
	assert.Equal(t, int64(1000), rows[999]["id"])
	assert.Equal(t, "w500", rows[499]["name"])
	assert.NotContains(t, rows[0], sqliteExtraColumn)
}

func TestSnapshotRow(t *testing.T) {
	columns := snapshotColumns(widgetSchema())
	require.Len(t, columns, 3)

	rec := NewRecord()
	rec.put("id", Integer(4))
	rec.put("name", Integer(7))
	rec.put("count", Integer(2))
	rec.put("tags", Text("x"))

	row := snapshotRow(rec, columns)
	require.Len(t, row, 5)
	assert.Equal(t, int64(4), row[0])
	assert.Nil(t, row[1], "an integer does not fit a text column")
	assert.Equal(t, int64(2), row[2])
	assert.Nil(t, row[3])

	extra, ok := row[4].(jsonText[sqliteExtra])
	require.True(t, ok)
	assert.Equal(t, []string{"createdAt"}, extra.Data.Absent)
	assert.True(t, Integer(7).Equal(extra.Data.Fields["name"]))
	assert.True(t, Text("x").Equal(extra.Data.Fields["tags"]))
}

func TestFitsColumn(t *testing.T) {
	assert.True(t, fitsColumn(Null(), TypeBoolean))
	assert.True(t, fitsColumn(Integer(1), TypeFloat))
	assert.False(t, fitsColumn(Float(1.5), TypeInteger))
	assert.True(t, fitsColumn(Text("x"), TypeDateOnly))
	assert.False(t, fitsColumn(Bool(true), TypeInteger))
	assert.Equal(t, "REAL", sqliteType(TypeFloat))
	assert.Equal(t, "TEXT", sqliteType(TypeDateTime))
}
