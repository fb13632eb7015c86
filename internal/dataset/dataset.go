package dataset

import (
	"fmt"
	"math"
	"strconv"
)

// Dataset is a row-oriented table with named, ordered columns.
// Cell values are one of: nil (null), int64, float64, string.
type Dataset struct {
	names []string
	cols  map[string][]interface{}
}

func New(names ...string) *Dataset {
	d := &Dataset{cols: make(map[string][]interface{})}
	for _, n := range names {
		d.names = append(d.names, n)
		d.cols[n] = nil
	}
	return d
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Dataset) NumRows() int {
	if len(d.names) == 0 {
		return 0
	}
	return len(d.cols[d.names[0]])
}

func (d *Dataset) NumCols() int {
	return len(d.names)
}

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Column returns the cell slice for a column. The slice is shared, not copied.
func (d *Dataset) Column(name string) []interface{} {
	return d.cols[name]
}

// SetColumn replaces a column's cells, appending the column if it is new.
func (d *Dataset) SetColumn(name string, values []interface{}) {
	if _, ok := d.cols[name]; !ok {
		d.names = append(d.names, name)
	}
	d.cols[name] = values
}

// AppendRow adds one row. The value count must match the column count.
func (d *Dataset) AppendRow(values ...interface{}) error {
	if len(values) != len(d.names) {
		return fmt.Errorf("dataset: row has %d values, want %d", len(values), len(d.names))
	}
	for i, n := range d.names {
		d.cols[n] = append(d.cols[n], values[i])
	}
	return nil
}

// Row materializes row i in column order.
func (d *Dataset) Row(i int) []interface{} {
	out := make([]interface{}, len(d.names))
	for j, n := range d.names {
		out[j] = d.cols[n][i]
	}
	return out
}

// Select returns a new dataset restricted to the given columns, in the
// given order. Unknown names are skipped.
func (d *Dataset) Select(names []string) *Dataset {
	out := &Dataset{cols: make(map[string][]interface{})}
	for _, n := range names {
		col, ok := d.cols[n]
		if !ok {
			continue
		}
		out.names = append(out.names, n)
		out.cols[n] = col
	}
	return out
}

// Reorder rearranges columns to match the given order. Every current
// column must appear exactly once in names.
func (d *Dataset) Reorder(names []string) error {
	if len(names) != len(d.names) {
		return fmt.Errorf("dataset: reorder got %d names, have %d columns", len(names), len(d.names))
	}
	for _, n := range names {
		if _, ok := d.cols[n]; !ok {
			return fmt.Errorf("dataset: reorder references unknown column %q", n)
		}
	}
	ordered := make([]string, len(names))
	copy(ordered, names)
	d.names = ordered
	return nil
}

// IsNull reports whether a cell holds no value.
func IsNull(v interface{}) bool {
	return v == nil
}

// AsFloat converts a numeric cell to float64.
func AsFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// AsInt converts a cell to int64. Whole-valued floats are accepted.
func AsInt(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) && !math.IsNaN(x) {
			return int64(x), true
		}
	}
	return 0, false
}

// Format renders a cell as its canonical string representation. Nulls
// render as the empty string.
func Format(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	}
	return fmt.Sprintf("%v", v)
}

// ParseCell converts a raw text value into a typed cell: empty → null,
// then int64, then float64, else string.
func ParseCell(s string) interface{} {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
