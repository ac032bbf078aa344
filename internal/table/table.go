package table

import (
	"fmt"
	"strings"
)

type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New returns an empty table with the given columns. Names must be unique.
func New(columns []string) (*Table, error) {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		t.index[c] = i
	}
	return t, nil
}

func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }
func (t *Table) Width() int        { return len(t.columns) }
func (t *Table) Len() int          { return len(t.rows) }

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) ColumnIndex(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return i, nil
}

// AppendRow adds a row; its width must equal the number of columns.
func (t *Table) AppendRow(row []Value) error {
	if len(row) != len(t.columns) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrRowWidth, len(row), len(t.columns))
	}
	t.rows = append(t.rows, append([]Value(nil), row...))
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value { return append([]Value(nil), t.rows[i]...) }

// Cell returns the value at row i of the named column.
func (t *Table) Cell(i int, column string) (Value, error) {
	j, err := t.ColumnIndex(column)
	if err != nil {
		return Value{}, err
	}
	return t.rows[i][j], nil
}

// Column returns a copy of every value in the named column.
func (t *Table) Column(name string) ([]Value, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out, nil
}

// MapAll replaces every cell with fn(cell) and returns how many changed.
func (t *Table) MapAll(fn func(Value) Value) int {
	changed := 0
	for _, r := range t.rows {
		for j, v := range r {
			nv := fn(v)
			if nv != v {
				r[j] = nv
				changed++
			}
		}
	}
	return changed
}

// MapColumn replaces every cell of the named column with fn(cell). The
// first error from fn aborts the pass; cells already rewritten stay.
func (t *Table) MapColumn(name string, fn func(Value) (Value, error)) (int, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return 0, err
	}
	changed := 0
	for i, r := range t.rows {
		nv, err := fn(r[j])
		if err != nil {
			return changed, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		if nv != r[j] {
			r[j] = nv
			changed++
		}
	}
	return changed, nil
}

// DropColumn removes the named column from the schema and every row.
func (t *Table) DropColumn(name string) error {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return err
	}
	t.columns = append(t.columns[:j], t.columns[j+1:]...)
	for i, r := range t.rows {
		t.rows[i] = append(r[:j], r[j+1:]...)
	}
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		t.index[c] = i
	}
	return nil
}

// DropDuplicates removes rows equal across every column, keeping the first
// occurrence. It returns the number of rows removed.
func (t *Table) DropDuplicates() int {
	seen := make(map[string]struct{}, len(t.rows))
	kept := t.rows[:0]
	for _, r := range t.rows {
		k := rowKey(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, r)
	}
	removed := len(t.rows) - len(kept)
	for i := len(kept); i < len(t.rows); i++ {
		t.rows[i] = nil
	}
	t.rows = kept
	return removed
}

// rowKey encodes kind and length with each cell so distinct rows never
// collide, whatever bytes the text holds.
func rowKey(r []Value) string {
	var b strings.Builder
	for _, v := range r {
		b.WriteByte(byte('0' + v.kind))
		switch v.kind {
		case KindText:
			fmt.Fprintf(&b, "%d:", len(v.text))
			b.WriteString(v.text)
		case KindBool:
			if v.b {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}

func (t *Table) Clone() *Table {
	c := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
		rows:    make([][]Value, len(t.rows)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	for i, r := range t.rows {
		c.rows[i] = append([]Value(nil), r...)
	}
	return c
}

// Equal reports whether both tables have the same columns in the same order
// and the same rows.
func (t *Table) Equal(o *Table) bool {
	if len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i, c := range t.columns {
		if o.columns[i] != c {
			return false
		}
	}
	for i, r := range t.rows {
		for j, v := range r {
			if o.rows[i][j] != v {
				return false
			}
		}
	}
	return true
}
