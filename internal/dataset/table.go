package dataset

import "math"

// Table is a tabular time series: rows indexed by a monotonic reference clock
// (seconds), columns either numeric or text. Tables are read-only once built.
type Table struct {
	name      string
	indexName string
	index     []float64
	columns   []string
	numeric   map[string][]float64
	text      map[string][]string
}

// NewTable starts a table with the given index. Columns are attached with
// WithFloat and WithText and must have len(index) rows.
func NewTable(name, indexName string, index []float64) *Table {
	return &Table{
		name:      name,
		indexName: indexName,
		index:     index,
		numeric:   make(map[string][]float64),
		text:      make(map[string][]string),
	}
}

// WithFloat attaches a numeric column and returns the table for chaining.
func (t *Table) WithFloat(col string, values []float64) *Table {
	if _, ok := t.numeric[col]; !ok {
		if _, ok := t.text[col]; !ok {
			t.columns = append(t.columns, col)
		}
	}
	delete(t.text, col)
	t.numeric[col] = values
	return t
}

// WithText attaches a text column and returns the table for chaining.
func (t *Table) WithText(col string, values []string) *Table {
	if _, ok := t.text[col]; !ok {
		if _, ok := t.numeric[col]; !ok {
			t.columns = append(t.columns, col)
		}
	}
	delete(t.numeric, col)
	t.text[col] = values
	return t
}

func (t *Table) Name() string      { return t.name }
func (t *Table) IndexName() string { return t.indexName }
func (t *Table) Len() int          { return len(t.index) }
func (t *Table) Empty() bool       { return len(t.index) == 0 }

// Index returns the reference clock values. Callers must not modify the slice.
func (t *Table) Index() []float64 { return t.index }

// Columns returns data column names in file order, excluding the index.
func (t *Table) Columns() []string { return t.columns }

// Has reports whether col is a data column (numeric or text).
func (t *Table) Has(col string) bool {
	_, n := t.numeric[col]
	_, s := t.text[col]
	return n || s
}

// Float returns a numeric column.
func (t *Table) Float(col string) ([]float64, bool) {
	v, ok := t.numeric[col]
	return v, ok
}

// Text returns a text column.
func (t *Table) Text(col string) ([]string, bool) {
	v, ok := t.text[col]
	return v, ok
}

// NaNCount counts missing values across the index and every numeric column.
// Empty cells in text columns count as missing too.
func (t *Table) NaNCount() int {
	n := 0
	for _, v := range t.index {
		if math.IsNaN(v) {
			n++
		}
	}
	for _, col := range t.columns {
		if vals, ok := t.numeric[col]; ok {
			for _, v := range vals {
				if math.IsNaN(v) {
					n++
				}
			}
			continue
		}
		for _, s := range t.text[col] {
			if s == "" {
				n++
			}
		}
	}
	return n
}
