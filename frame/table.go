package frame

import (
	"errors"
	"fmt"
)

type (
	// Table is an ordered set of named, positionally aligned columns.
	//
	// A Table is not safe for concurrent use. Functions that mutate it take
	// exclusive access for the duration of the call and hand the same pointer back.
	Table struct {
		columns []*Column
		index   map[string]int
		rows    int
	}
)

var (
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrLengthMismatch  = errors.New("column length does not match table row count")
	ErrColumnNotFound  = errors.New("column not found")
)

func NewTable(cols ...*Column) (*Table, error) {
	t := &Table{
		index: make(map[string]int),
	}
	for _, col := range cols {
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) NumRows() int {
	return t.rows
}

func (t *Table) NumCols() int {
	return len(t.columns)
}

// Names returns the column names in table order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the columns in table order. The slice is a copy, the columns are not.
func (t *Table) Columns() []*Column {
	cols := make([]*Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// AddColumn appends a column. The first column of an empty table sets the row count.
func (t *Table) AddColumn(col *Column) error {
	if _, exists := t.index[col.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Name)
	}
	if len(t.columns) == 0 && t.rows == 0 {
		t.rows = col.Len()
	} else if col.Len() != t.rows {
		return fmt.Errorf("%w: %s has %d rows, table has %d", ErrLengthMismatch, col.Name, col.Len(), t.rows)
	}
	t.index[col.Name] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// Replace swaps the column with the same name, keeping its position
func (t *Table) Replace(col *Column) error {
	i, ok := t.index[col.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, col.Name)
	}
	if col.Len() != t.rows {
		return fmt.Errorf("%w: %s has %d rows, table has %d", ErrLengthMismatch, col.Name, col.Len(), t.rows)
	}
	t.columns[i] = col
	return nil
}

// Drop removes a column, reporting whether it existed
func (t *Table) Drop(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.columns = append(t.columns[:i], t.columns[i+1:]...)
	delete(t.index, name)
	for j := i; j < len(t.columns); j++ {
		t.index[t.columns[j].Name] = j
	}
	return true
}

// Rows converts the table to JSON-friendly rows, missing cells become nil
func (t *Table) Rows() []map[string]any {
	rows := make([]map[string]any, t.rows)
	for r := 0; r < t.rows; r++ {
		row := make(map[string]any, len(t.columns))
		for _, col := range t.columns {
			row[col.Name] = col.Values[r].Interface()
		}
		rows[r] = row
	}
	return rows
}
