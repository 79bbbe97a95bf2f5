package vendorsum

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the inferred type of a Table column.
type Kind int

const (
	KindUnknown Kind = iota
	KindInt          // int64 values
	KindFloat        // float64 values
	KindText         // string values
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Column is a named, typed column. A nil entry in Values is a null.
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// Float returns the value at row i as a float64.
// Nulls and values that are not numeric yield NaN.
func (c *Column) Float(i int) float64 {
	switch v := c.Values[i].(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// ToFloat coerces every non-null value to float64 and sets the kind to
// KindFloat. Strings are parsed after trimming; values out of float64 range
// become ±Inf (or ±0 when too small). The first value that cannot
// be converted aborts with a *TypeConversionError and leaves the column as
// it was.
func (c *Column) ToFloat() error {
	out := make([]any, len(c.Values))
	for i, v := range c.Values {
		switch x := v.(type) {
		case nil:
			out[i] = nil
		case int64:
			out[i] = float64(x)
		case float64:
			out[i] = x
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return &TypeConversionError{Column: c.Name, Row: i, Value: v}
			}
			out[i] = f
		default:
			return &TypeConversionError{Column: c.Name, Row: i, Value: v}
		}
	}
	c.Values = out
	c.Kind = KindFloat
	return nil
}

// TrimSpace removes leading and trailing whitespace from every string value.
func (c *Column) TrimSpace() {
	for i, v := range c.Values {
		if s, ok := v.(string); ok {
			c.Values[i] = strings.TrimSpace(s)
		}
	}
}

// FillNull replaces nulls with the zero value of the column's kind:
// 0 for ints, 0.0 for floats and the literal "0" for text.
func (c *Column) FillNull() {
	var zero any
	switch c.Kind {
	case KindInt:
		zero = int64(0)
	case KindText:
		zero = "0"
	default:
		zero = float64(0)
	}
	for i, v := range c.Values {
		if v == nil {
			c.Values[i] = zero
		}
	}
}

// Table is an in-memory tabular result: ordered columns of equal length.
// Tables are not safe for concurrent mutation.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable creates an empty table with no columns.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// NewTableFromRows builds a table from row-major values. Each value is
// normalised with NormalizeValue and every column's kind is inferred.
// Every row must have len(names) values.
func NewTableFromRows(names []string, rows [][]any) (*Table, error) {
	cols := make([][]any, len(names))
	for i := range cols {
		cols[i] = make([]any, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", r, len(row), len(names))
		}
		for c, v := range row {
			cols[c][r] = NormalizeValue(v)
		}
	}

	t := NewTable()
	t.rows = len(rows)
	for i, name := range names {
		if err := t.AddColumn(name, InferKind(cols[i]), cols[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddColumn appends a column, or replaces the column of the same name in
// place. Values are conformed to kind. The first column fixes the row count.
func (t *Table) AddColumn(name string, kind Kind, values []any) error {
	if len(t.columns) > 0 && len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	col := &Column{Name: name, Kind: kind, Values: conform(values, kind)}
	if i, ok := t.index[name]; ok {
		t.columns[i] = col
		return nil
	}
	if len(t.columns) == 0 {
		t.rows = len(values)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// Column looks up a column by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// MustColumn is Column that returns an ErrMissingColumn error instead of a bool.
func (t *Table) MustColumn(name string) (*Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	return c, nil
}

// Columns returns the columns in order. The slice must not be modified.
func (t *Table) Columns() []*Column { return t.columns }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.columns) }

// Row returns a copy of the values of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for c, col := range t.columns {
		row[c] = col.Values[i]
	}
	return row
}

// FillNull fills nulls in every column. See Column.FillNull.
func (t *Table) FillNull() {
	for _, c := range t.columns {
		c.FillNull()
	}
}

// Clone returns a deep copy of the table structure. Values themselves are
// immutable scalars and are shared.
func (t *Table) Clone() *Table {
	out := NewTable()
	out.rows = t.rows
	for _, c := range t.columns {
		vals := make([]any, len(c.Values))
		copy(vals, c.Values)
		out.index[c.Name] = len(out.columns)
		out.columns = append(out.columns, &Column{Name: c.Name, Kind: c.Kind, Values: vals})
	}
	return out
}

// InferKind determines a column kind from its non-null values:
// all int64 gives KindInt, any float64 among numerics gives KindFloat, any
// string gives KindText. A column with only nulls is KindFloat.
func InferKind(values []any) Kind {
	kind := KindUnknown
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case int64:
			if kind == KindUnknown {
				kind = KindInt
			}
		case float64:
			if kind != KindText {
				kind = KindFloat
			}
		default:
			return KindText
		}
	}
	if kind == KindUnknown {
		return KindFloat
	}
	return kind
}

// NormalizeValue maps driver values onto the table's scalar set:
// nil, int64, float64 and string.
func NormalizeValue(v any) any {
	switch x := v.(type) {
	case nil, int64, float64, string:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return float64(x)
		}
		return int64(x)
	case float32:
		return float64(x)
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// conform converts values to the representation of kind: ints widen to
// floats in float columns, and non-null values become strings in text columns.
func conform(values []any, kind Kind) []any {
	switch kind {
	case KindFloat:
		for i, v := range values {
			if n, ok := v.(int64); ok {
				values[i] = float64(n)
			}
		}
	case KindText:
		for i, v := range values {
			if v != nil {
				if _, ok := v.(string); !ok {
					values[i] = FormatValue(v)
				}
			}
		}
	}
	return values
}

// FormatValue renders a scalar for delimited text output. Nulls render as
// the empty string. Floats use the shortest representation that round-trips,
// with ".0" appended to integral values so they re-read as floats; the
// non-finite values render as inf, -inf and NaN.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return FormatFloat(x)
	default:
		return fmt.Sprint(x)
	}
}

// FormatFloat renders a float64. See FormatValue.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
