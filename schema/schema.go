// Package schema has the data model shared by all parts of sweeplens.
package schema

import (
	"fmt"
	"math"
	"strconv"
)

// Row is a single trial: a mapping from column name to a scalar value.
// A missing cell is represented by a nil value or an absent key. The
// hyperparameter columns are dynamic, so rows carry no fixed shape.
type Row map[string]any

// Table is an ordered sequence of trial rows. Columns preserves the
// column order of the source data.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table declares the given column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// HyperparamColumns returns every declared column that is not a
// bookkeeping column, in table order.
func (t *Table) HyperparamColumns() []string {
	var cols []string
	for _, c := range t.Columns {
		if _, ok := BookkeepingColumns[c]; !ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// Hyperparams returns a snapshot of the row restricted to non-bookkeeping
// columns. The snapshot is a fresh map, detached from the row.
func (r Row) Hyperparams() map[string]any {
	params := make(map[string]any)
	for k, v := range r {
		if _, ok := BookkeepingColumns[k]; !ok {
			params[k] = v
		}
	}
	return params
}

// IsMissing reports whether v represents an absent cell.
func IsMissing(v any) bool {
	return v == nil
}

// AsFloat returns the numeric value of v when v holds a number.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FormatValue renders a cell value for labels and issue details.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "missing"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}
