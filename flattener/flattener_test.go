package flattener

import (
	"errors"
	"testing"

	"github.com/danthegoodman1/frameclean/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	in := []frame.Value{
		frame.List(frame.Int(1), frame.Int(2), frame.Int(3)),
		frame.Text("x"),
		frame.Int(5),
		frame.List(),
		frame.Missing(),
		frame.List(frame.Text("a"), frame.Number(1.5)),
	}

	out := Flatten(in)
	require.Len(t, out, len(in))
	assert.Equal(t, frame.Text("1, 2, 3"), out[0])
	assert.True(t, out[1].IsMissing())
	assert.True(t, out[2].IsMissing())
	assert.True(t, out[3].IsMissing())
	assert.True(t, out[4].IsMissing())
	assert.Equal(t, frame.Text("a, 1.5"), out[5])
}

func TestFlattenMissingItems(t *testing.T) {
	out := Flatten([]frame.Value{
		frame.List(frame.Text("a"), frame.Missing()),
		frame.List(frame.Missing(), frame.Int(2)),
		frame.List(frame.Missing()),
	})
	// missing items render as empty strings and keep their position
	assert.Equal(t, frame.Text("a, "), out[0])
	assert.Equal(t, frame.Text(", 2"), out[1])
	assert.True(t, out[2].IsMissing())
}

func TestFlattenEmpty(t *testing.T) {
	assert.Len(t, Flatten(nil), 0)
}

func TestFlattenTable(t *testing.T) {
	tbl, err := frame.FromRows([]map[string]any{
		{"tags": []any{"a", "b"}, "other": []any{1.0}, "name": "x"},
		{"tags": []any{}, "other": nil, "name": "y"},
	})
	require.NoError(t, err)

	require.NoError(t, FlattenTable(tbl, "tags"))
	tags, _ := tbl.Column("tags")
	assert.Equal(t, frame.TypeText, tags.Type)
	assert.Equal(t, []frame.Value{frame.Text("a, b"), frame.Missing()}, tags.Values)

	other, _ := tbl.Column("other")
	assert.Equal(t, frame.TypeList, other.Type)

	require.NoError(t, FlattenTable(tbl))
	other, _ = tbl.Column("other")
	assert.Equal(t, []frame.Value{frame.Text("1"), frame.Missing()}, other.Values)

	err = FlattenTable(tbl, "nope")
	assert.True(t, errors.Is(err, frame.ErrColumnNotFound))
}
