package flattener

import (
	"fmt"

	"github.com/danthegoodman1/frameclean/frame"
)

const Separator = ", "

// Flatten joins the items of each list cell with Separator. Anything that is not a
// list, including text, becomes missing, and so does an empty join.
// The result is a new slice, index aligned with values.
func Flatten(values []frame.Value) []frame.Value {
	out := make([]frame.Value, len(values))
	for i, v := range values {
		s := ""
		if items, ok := v.AsList(); ok {
			s = frame.JoinList(items, Separator)
		}
		if s == "" {
			out[i] = frame.Missing()
			continue
		}
		out[i] = frame.Text(s)
	}
	return out
}

// FlattenColumn returns a text column, the input is left alone
func FlattenColumn(col *frame.Column) *frame.Column {
	return frame.NewColumn(col.Name, frame.TypeText, Flatten(col.Values)...)
}

// FlattenTable replaces the named columns with their flattened form in place.
// With no names every list column is flattened.
func FlattenTable(t *frame.Table, names ...string) error {
	if len(names) == 0 {
		for _, col := range t.Columns() {
			if col.Type == frame.TypeList {
				names = append(names, col.Name)
			}
		}
	}
	flat := make([]*frame.Column, 0, len(names))
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return fmt.Errorf("%w: %s", frame.ErrColumnNotFound, name)
		}
		flat = append(flat, FlattenColumn(col))
	}
	for _, col := range flat {
		if err := t.Replace(col); err != nil {
			return fmt.Errorf("error in Replace: %w", err)
		}
	}
	return nil
}
