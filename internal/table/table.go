// Package table is the canonical output value: an ordered set of named
// columns and rows of nullable cells. Every operation returns a new Table;
// receivers are never modified.
package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Table is a column-ordered row set. A nil cell is null.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New returns an empty table with the given column order.
func New(columns ...string) *Table {
	cols := append([]string(nil), columns...)
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	return &Table{columns: cols, index: index}
}

// Row is a read-only view of one table row.
type Row struct {
	t      *Table
	values []any
}

// Get returns the cell for column, or nil if the column is unknown.
func (r Row) Get(column string) any {
	i, ok := r.t.index[column]
	if !ok {
		return nil
	}
	return r.values[i]
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns row i.
func (t *Table) Row(i int) Row {
	return Row{t: t, values: t.rows[i]}
}

// Value returns the cell at row i for column.
func (t *Table) Value(i int, column string) any {
	return t.Row(i).Get(column)
}

// Builder accumulates rows for a fixed column order without copying on each
// append. Build hands the rows over to a new Table.
type Builder struct {
	t *Table
}

// NewBuilder starts a table with the given column order.
func NewBuilder(columns ...string) *Builder {
	return &Builder{t: New(columns...)}
}

// Add appends one row keyed by column name.
func (b *Builder) Add(values map[string]any) {
	b.t.rows = append(b.t.rows, b.t.project(values))
}

// Build returns the accumulated table. The builder must not be reused.
func (b *Builder) Build() *Table {
	t := b.t
	b.t = nil
	return t
}

func (t *Table) project(values map[string]any) []any {
	row := make([]any, len(t.columns))
	for i, c := range t.columns {
		row[i] = values[c]
	}
	return row
}

func (t *Table) clone(capacity int) *Table {
	out := New(t.columns...)
	out.rows = make([][]any, len(t.rows), capacity)
	copy(out.rows, t.rows)
	return out
}

// Concat stacks tables in argument order under the given column order.
// Columns a table lacks are null for its rows.
func Concat(columns []string, tables ...*Table) *Table {
	out := New(columns...)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, r := range t.rows {
			row := make([]any, len(out.columns))
			for i, c := range out.columns {
				if j, ok := t.index[c]; ok {
					row[i] = r[j]
				}
			}
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// Filter returns the rows for which keep reports true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.columns...)
	for _, r := range t.rows {
		if keep(Row{t: t, values: r}) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// SortStable returns the rows ordered by less, keeping the original order
// of equal rows.
func (t *Table) SortStable(less func(a, b Row) bool) *Table {
	out := t.clone(len(t.rows))
	sort.SliceStable(out.rows, func(i, j int) bool {
		return less(Row{t: out, values: out.rows[i]}, Row{t: out, values: out.rows[j]})
	})
	return out
}

// Select returns the named columns in the given order. Unknown columns come
// back as all-null columns.
func (t *Table) Select(columns ...string) *Table {
	return Concat(columns, t)
}

// DropSuffix removes every column whose name ends with suffix.
func (t *Table) DropSuffix(suffix string) *Table {
	keep := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if !strings.HasSuffix(c, suffix) {
			keep = append(keep, c)
		}
	}
	return t.Select(keep...)
}

// Records returns each row as a column->value map.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, len(t.rows))
	for i, r := range t.rows {
		m := make(map[string]any, len(t.columns))
		for j, c := range t.columns {
			m[c] = r[j]
		}
		out[i] = m
	}
	return out
}

// MarshalJSON encodes the table as an array of objects whose keys follow the
// column order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range t.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, c := range t.columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(c)
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(jsonValue(r[j]))
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", c, err)
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// WriteCSV writes a header row followed by every row. Nulls are empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return err
	}
	rec := make([]string, len(t.columns))
	for _, r := range t.rows {
		for j, v := range r {
			rec[j] = FormatCell(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatCell renders one cell as text. Times use RFC 3339 with their offset.
func FormatCell(v any) string {
	switch x := jsonValue(v).(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// jsonValue dereferences the pointer cells rows are usually built from.
func jsonValue(v any) any {
	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case *bool:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	default:
		return v
	}
}
