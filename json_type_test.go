package recstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestJSONText tests the jsonText[T] column type
func TestJSONText(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		j := jsonText[sqliteExtra]{Data: sqliteExtra{
			Fields: map[string]Value{"count": Text("12abc"), "at": DateOnly(fixedNow)},
			Absent: []string{"note"},
		}}

		val, err := j.Value()
		require.NoError(t, err)

		// Value is text so SQLite keeps TEXT affinity
		s, ok := val.(string)
		require.True(t, ok, "expected string")
		assert.JSONEq(t, `{"fields":{"at":"2024-03-15","count":"12abc"},"absent":["note"]}`, s)
	})

	t.Run("Scan from []byte", func(t *testing.T) {
		var j jsonText[sqliteExtraIn]
		err := j.Scan([]byte(`{"fields":{"count":12,"ratio":0.5},"absent":["id"]}`))
		require.NoError(t, err)

		assert.Equal(t, json.Number("12"), j.Data.Fields["count"], "numbers keep their text")
		assert.Equal(t, json.Number("0.5"), j.Data.Fields["ratio"])
		assert.Equal(t, []string{"id"}, j.Data.Absent)
	})

	t.Run("Scan from string", func(t *testing.T) {
		var j jsonText[sqliteExtraIn]
		require.NoError(t, j.Scan(`{"fields":{"ok":true}}`))
		assert.Equal(t, true, j.Data.Fields["ok"])
	})

	t.Run("Scan nil resets", func(t *testing.T) {
		j := jsonText[sqliteExtraIn]{Data: sqliteExtraIn{Absent: []string{"stale"}}}
		require.NoError(t, j.Scan(nil))
		assert.Empty(t, j.Data.Absent)
	})

	t.Run("Scan blank", func(t *testing.T) {
		var j jsonText[sqliteExtraIn]
		require.NoError(t, j.Scan("  "))
		assert.Nil(t, j.Data.Fields)
	})

	t.Run("Scan invalid type", func(t *testing.T) {
		var j jsonText[sqliteExtraIn]
		assert.Error(t, j.Scan(42))
	})

	t.Run("Scan invalid JSON", func(t *testing.T) {
		var j jsonText[sqliteExtraIn]
		assert.Error(t, j.Scan("{"))
	})
}

func TestSQLiteExtraEmpty(t *testing.T) {
	assert.True(t, sqliteExtra{Fields: map[string]Value{}}.empty())
	assert.False(t, sqliteExtra{Absent: []string{"x"}}.empty())
}
