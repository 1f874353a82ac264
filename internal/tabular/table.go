package tabular

import "sort"

// Table is a column-ordered, in-memory table. It is the unit every pipeline
// stage consumes and produces. Stages never mutate their input; they Clone
// first, so a Table handed downstream is safe to keep.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// New creates an empty table with the given column order.
func New(cols ...string) *Table {
	t := &Table{
		cols:  append([]string(nil), cols...),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range t.cols {
		t.index[c] = i
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// HasColumns reports whether every named column exists.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// AddColumn appends a new column filled with the given value. Adding an
// existing column is a no-op.
func (t *Table) AddColumn(name string, fill Value) {
	if t.HasColumn(name) {
		return
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill)
	}
}

// DropColumn removes the named column if present.
func (t *Table) DropColumn(name string) {
	pos, ok := t.index[name]
	if !ok {
		return
	}
	t.cols = append(t.cols[:pos], t.cols[pos+1:]...)
	delete(t.index, name)
	for c, i := range t.index {
		if i > pos {
			t.index[c] = i - 1
		}
	}
	for i := range t.rows {
		t.rows[i] = append(t.rows[i][:pos], t.rows[i][pos+1:]...)
	}
}

// RenameColumn renames old to new. It reports false when old is absent or
// new already exists.
func (t *Table) RenameColumn(old, new string) bool {
	pos, ok := t.index[old]
	if !ok || t.HasColumn(new) {
		return false
	}
	t.cols[pos] = new
	delete(t.index, old)
	t.index[new] = pos
	return true
}

// AppendRow adds a row. Short rows are padded with nulls, long rows truncated
// to the table width.
func (t *Table) AppendRow(vals ...Value) {
	row := make([]Value, len(t.cols))
	copy(row, vals)
	t.rows = append(t.rows, row)
}

// At returns the cell at (row, col). A missing column reads as null.
func (t *Table) At(row int, col string) Value {
	pos, ok := t.index[col]
	if !ok {
		return Null()
	}
	return t.rows[row][pos]
}

// Set writes the cell at (row, col). Writes to a missing column are ignored.
func (t *Table) Set(row int, col string, v Value) {
	pos, ok := t.index[col]
	if !ok {
		return
	}
	t.rows[row][pos] = v
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	out := New(t.cols...)
	out.rows = make([][]Value, len(t.rows))
	for i, r := range t.rows {
		out.rows[i] = append([]Value(nil), r...)
	}
	return out
}

// Row is a live view over one table row.
type Row struct {
	t     *Table
	cells []Value
}

// At returns the row's cell for the named column, null when absent.
func (r Row) At(col string) Value {
	pos, ok := r.t.index[col]
	if !ok {
		return Null()
	}
	return r.cells[pos]
}

// Row returns a view of row i.
func (t *Table) Row(i int) Row {
	return Row{t: t, cells: t.rows[i]}
}

// SortStable reorders rows in place using a stable sort.
func (t *Table) SortStable(less func(a, b Row) bool) {
	sort.SliceStable(t.rows, func(i, j int) bool {
		return less(Row{t: t, cells: t.rows[i]}, Row{t: t, cells: t.rows[j]})
	})
}

// Records flattens the table into one map per row, which is what the API
// layer serializes. Cell order is carried separately by Columns.
func (t *Table) Records() []map[string]Value {
	out := make([]map[string]Value, len(t.rows))
	for i := range t.rows {
		rec := make(map[string]Value, len(t.cols))
		for j, c := range t.cols {
			rec[c] = t.rows[i][j]
		}
		out[i] = rec
	}
	return out
}
