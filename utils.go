// This file provides helpers for working with query results.
//
// The record store returns results in insertion order; ordering and
// truncation are done by the caller:
//   - SortRecords: stable sort by one or more columns
//   - Limit: keep the first n records
//   - ResolveColumnNames: column names from typed field references
package recstore

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/routinerocket/recstore/clause"
)

// ResolveColumnNames extracts column names from typed field references.
//
// Example:
//
//	cols := ResolveColumnNames([]clause.Columnar{models.Mood.UserID, models.Mood.Date})
//	// cols = ["userId", "date"]
func ResolveColumnNames(args []clause.Columnar) []string {
	if len(args) == 0 {
		return nil
	}
	cols := make([]string, len(args))
	for i, arg := range args {
		cols[i] = arg.ColumnName()
	}
	return cols
}

// SortRecords sorts records in place by the given orders, the first order
// being the primary key. The sort is stable so equal records keep their
// insertion order.
//
// Comparison rules:
//   - Null and absent values sort before everything else
//   - Numbers and booleans compare numerically
//   - Text and dates compare as strings; canonical dates sort chronologically
//   - Numbers sort before text when kinds differ
//
// Example:
//
//	moods := moodTable.FindAll(ctx, recstore.Where{"userId": id})
//	recstore.SortRecords(moods, models.Mood.Date.Desc())
func SortRecords(records []Record, orders ...clause.OrderByColumn) {
	if len(orders) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, o := range orders {
			c := compareValues(records[i].Value(o.Column.Name), records[j].Value(o.Column.Name))
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// Limit returns at most the first n records. A non-positive n keeps all.
func Limit(records []Record, n int) []Record {
	if n <= 0 || len(records) <= n {
		return records
	}
	return records[:n]
}

func compareValues(a, b Value) int {
	ra, rb := sortRank(a), sortRank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 0:
		return 0
	case 1:
		if a.kind == KindInteger && b.kind == KindInteger {
			return compareInt(a.num, b.num)
		}
		x, _ := a.numeric()
		y, _ := b.numeric()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(a.str, b.str)
}

// sortRank orders kinds: null, then numbers and booleans, then text.
func sortRank(v Value) int {
	switch v.kind {
	case KindNull:
		return 0
	case KindInteger, KindFloat, KindBoolean:
		return 1
	}
	return 2
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// toInt64 normalises an id or foreign key for comparison. Integers, whole
// floats and integer text ("7") are accepted.
func toInt64(v Value) (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.num, true
	case KindFloat:
		if v.flt == math.Trunc(v.flt) && !math.IsInf(v.flt, 0) && !math.IsNaN(v.flt) {
			return int64(v.flt), true
		}
	case KindText:
		if i, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}
