package recstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const (
	sqliteMetaTable   = "_recstore_tables"
	sqliteExtraColumn = "_extra"

	// sqliteMaxParams keeps multi-row inserts under the default SQLite
	// host parameter limit of older builds.
	sqliteMaxParams = 900
)

// SQLiteSnapshot persists the registry into a SQLite database: one SQL table
// per record table with a typed column per schema column, plus a JSON column
// for everything the typed columns cannot hold. Every save replaces the whole
// snapshot inside one transaction.
//
// The caller opens the database with a registered sqlite3 driver:
//
//	import _ "github.com/mattn/go-sqlite3"
//
//	db, err := sql.Open("sqlite3", "data/recstore.db")
//	store := recstore.New(recstore.NewSQLiteSnapshot(db))
type SQLiteSnapshot struct {
	db *sqlx.DB
}

var _ Persister = (*SQLiteSnapshot)(nil)

// NewSQLiteSnapshot wraps an open SQLite database.
func NewSQLiteSnapshot(db *sql.DB) *SQLiteSnapshot {
	return &SQLiteSnapshot{db: sqlx.NewDb(db, "sqlite3")}
}

// Close closes the underlying database.
func (p *SQLiteSnapshot) Close() error {
	return p.db.Close()
}

// Save replaces the snapshot with tables.
func (p *SQLiteSnapshot) Save(ctx context.Context, tables []TableData) (err error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, position INTEGER NOT NULL)",
		quoteIdent(sqliteMetaTable),
	)); err != nil {
		return fmt.Errorf("create snapshot catalog: %w", err)
	}

	var previous []string
	if err = tx.SelectContext(ctx, &previous, "SELECT name FROM "+quoteIdent(sqliteMetaTable)); err != nil {
		return fmt.Errorf("read snapshot catalog: %w", err)
	}
	for _, name := range previous {
		if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
			return fmt.Errorf("drop snapshot table %s: %w", name, err)
		}
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(sqliteMetaTable)); err != nil {
		return fmt.Errorf("reset snapshot catalog: %w", err)
	}

	for pos, t := range tables {
		if err = p.saveTable(ctx, tx, pos, t); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (p *SQLiteSnapshot) saveTable(ctx context.Context, tx *sqlx.Tx, pos int, t TableData) error {
	columns := snapshotColumns(t.Schema)

	defs := make([]string, 0, len(columns)+2)
	defs = append(defs, quoteIdent(idColumn)+" INTEGER")
	for _, c := range columns {
		defs = append(defs, quoteIdent(c.Name)+" "+sqliteType(c.Type))
	}
	defs = append(defs, quoteIdent(sqliteExtraColumn)+" TEXT")

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(t.Name), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create snapshot table %s: %w", t.Name, err)
	}

	sqlStr, args, err := sq.Insert(quoteIdent(sqliteMetaTable)).
		Columns("name", "position").
		Values(t.Name, pos).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("register snapshot table %s: %w", t.Name, err)
	}

	if len(t.Records) == 0 {
		return nil
	}

	names := make([]string, 0, len(columns)+2)
	names = append(names, quoteIdent(idColumn))
	for _, c := range columns {
		names = append(names, quoteIdent(c.Name))
	}
	names = append(names, quoteIdent(sqliteExtraColumn))

	chunk := sqliteMaxParams / len(names)
	if chunk < 1 {
		chunk = 1
	}

	// Build batch INSERT statements, one per chunk of rows
	for start := 0; start < len(t.Records); start += chunk {
		end := min(start+chunk, len(t.Records))
		builder := sq.Insert(quoteIdent(t.Name)).Columns(names...)
		for _, rec := range t.Records[start:end] {
			builder = builder.Values(snapshotRow(rec, columns)...)
		}
		sqlStr, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert snapshot rows into %s: %w", t.Name, err)
		}
	}
	return nil
}

// snapshotColumns returns the schema columns stored as typed SQL columns.
func snapshotColumns(schema *Schema) []Column {
	var out []Column
	for _, c := range schema.Columns() {
		if c.Name == idColumn || c.Name == sqliteExtraColumn {
			continue
		}
		out = append(out, c)
	}
	return out
}

// snapshotRow lays out one record as id, typed columns, extra payload.
func snapshotRow(rec Record, columns []Column) []any {
	extra := sqliteExtra{Fields: make(map[string]Value)}
	vals := make([]any, 0, len(columns)+2)

	id := rec.Value(idColumn)
	if id.kind == KindInteger {
		vals = append(vals, id.num)
	} else {
		vals = append(vals, nil)
		if _, ok := rec.Get(idColumn); ok {
			extra.Fields[idColumn] = id
		} else {
			extra.Absent = append(extra.Absent, idColumn)
		}
	}

	for _, c := range columns {
		v, ok := rec.Get(c.Name)
		switch {
		case !ok:
			extra.Absent = append(extra.Absent, c.Name)
			vals = append(vals, nil)
		case fitsColumn(v, c.Type):
			vals = append(vals, v.Any())
		default:
			extra.Fields[c.Name] = v
			vals = append(vals, nil)
		}
	}

	for _, f := range rec.fields {
		if f == idColumn {
			continue
		}
		if isSnapshotColumn(f, columns) {
			continue
		}
		extra.Fields[f] = rec.values[f]
	}

	if extra.empty() {
		return append(vals, nil)
	}
	return append(vals, jsonText[sqliteExtra]{Data: extra})
}

func isSnapshotColumn(name string, columns []Column) bool {
	for _, c := range columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// fitsColumn reports whether v survives a trip through a column of type t
// with its kind intact.
func fitsColumn(v Value, t Type) bool {
	switch v.kind {
	case KindNull:
		return true
	case KindText, KindDateTime, KindDateOnly:
		return t == TypeText || t == TypeDateTime || t == TypeDateOnly
	case KindInteger:
		return t == TypeInteger || t == TypeFloat
	case KindFloat:
		return t == TypeFloat
	case KindBoolean:
		return t == TypeBoolean
	}
	return false
}

// sqliteType maps a column type to the declared SQL type. Date columns are
// TEXT so the driver hands back the canonical strings unparsed.
func sqliteType(t Type) string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "REAL"
	case TypeBoolean:
		return "BOOLEAN"
	}
	return "TEXT"
}

// Load reads the snapshot. A database without the catalog table is ErrNoSnapshot.
func (p *SQLiteSnapshot) Load(ctx context.Context) (map[string][]RawRecord, error) {
	sqlStr, args, err := sq.Select("COUNT(*)").
		From("sqlite_master").
		Where(sq.Eq{"type": "table", "name": sqliteMetaTable}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var n int
	if err := p.db.GetContext(ctx, &n, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("inspect snapshot: %w", err)
	}
	if n == 0 {
		return nil, ErrNoSnapshot
	}

	sqlStr, args, err = sq.Select("name").From(quoteIdent(sqliteMetaTable)).OrderBy("position").ToSql()
	if err != nil {
		return nil, err
	}
	var names []string
	if err := p.db.SelectContext(ctx, &names, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("read snapshot catalog: %w", err)
	}

	out := make(map[string][]RawRecord, len(names))
	for _, name := range names {
		rows, err := p.loadTable(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = rows
	}
	return out, nil
}

func (p *SQLiteSnapshot) loadTable(ctx context.Context, name string) ([]RawRecord, error) {
	sqlStr, args, err := sq.Select("*").From(quoteIdent(name)).OrderBy("rowid").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := p.db.QueryxContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("read snapshot table %s: %w", name, err)
	}
	defer rows.Close()

	out := make([]RawRecord, 0)
	for rows.Next() {
		m := make(map[string]any)
		if err := rows.MapScan(m); err != nil {
			return nil, fmt.Errorf("scan snapshot table %s: %w", name, err)
		}

		var extra jsonText[sqliteExtraIn]
		if err := extra.Scan(m[sqliteExtraColumn]); err != nil {
			return nil, fmt.Errorf("decode %s of %s: %w", sqliteExtraColumn, name, err)
		}
		delete(m, sqliteExtraColumn)

		raw := make(RawRecord, len(m)+len(extra.Data.Fields))
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			raw[k] = v
		}
		for _, k := range extra.Data.Absent {
			delete(raw, k)
		}
		for k, v := range extra.Data.Fields {
			raw[k] = v
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot table %s: %w", name, err)
	}
	return out, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
