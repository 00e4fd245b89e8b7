package frame

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	assert.True(t, Missing().IsMissing())
	assert.True(t, Value{}.IsMissing())
	assert.True(t, Number(math.NaN()).IsMissing())
	assert.Equal(t, KindList, List().Kind())
	assert.False(t, List().IsMissing())

	s, ok := Text("hey").AsText()
	assert.True(t, ok)
	assert.Equal(t, "hey", s)

	f, ok := Int(3).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = Text("3").AsInt()
	assert.False(t, ok)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "", Missing().String())
	assert.Equal(t, "1.5", Number(1.5).String())
	assert.Equal(t, "2", Number(2).String())
	assert.Equal(t, "-4", Int(-4).String())
	assert.Equal(t, "[1, a]", List(Int(1), Text("a")).String())
}

func TestValueKey(t *testing.T) {
	assert.Equal(t, Int(1).Key(), Number(1).Key())
	assert.NotEqual(t, Text("1").Key(), Int(1).Key())
	assert.NotEqual(t, Number(1.5).Key(), Number(1.25).Key())
	assert.Equal(t, List(Int(1), Int(2)).Key(), List(Int(1), Int(2)).Key())
}

func TestFromInterface(t *testing.T) {
	assert.True(t, FromInterface(nil).IsMissing())
	assert.Equal(t, Text("x"), FromInterface("x"))
	assert.Equal(t, Number(1.5), FromInterface(1.5))
	assert.Equal(t, Int(1), FromInterface(true))
	assert.Equal(t, Int(7), FromInterface(7))

	l, ok := FromInterface([]any{"a", 1.0, nil}).AsList()
	require.True(t, ok)
	require.Len(t, l, 3)
	assert.True(t, l[2].IsMissing())
}

func TestInferType(t *testing.T) {
	assert.Equal(t, TypeInt, InferType([]Value{Int(1), Missing(), Int(2)}))
	assert.Equal(t, TypeNumber, InferType([]Value{Int(1), Number(2.5)}))
	assert.Equal(t, TypeText, InferType([]Value{Int(1), Text("a")}))
	assert.Equal(t, TypeList, InferType([]Value{List(Int(1)), Missing()}))
	assert.Equal(t, TypeList, InferType([]Value{List(Int(1)), Text("x"), Int(5)}))
	assert.Equal(t, TypeText, InferType([]Value{Missing(), Missing()}))
}

func TestTableOperations(t *testing.T) {
	tbl, err := NewTable(
		TextColumn("a", "x", "y"),
		NewColumn("b", TypeInt, Int(1), Int(2)),
		NewColumn("c", TypeNumber, Number(1), Missing()),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Names())

	err = tbl.AddColumn(TextColumn("a", "z", "z"))
	assert.True(t, errors.Is(err, ErrDuplicateColumn))

	err = tbl.AddColumn(TextColumn("d", "z"))
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	assert.True(t, tbl.Drop("b"))
	assert.False(t, tbl.Drop("b"))
	assert.Equal(t, []string{"a", "c"}, tbl.Names())

	c, ok := tbl.Column("c")
	require.True(t, ok)
	assert.Equal(t, 0.5, c.MissingFraction())

	err = tbl.Replace(NewColumn("c", TypeInt, Int(5), Int(6)))
	require.NoError(t, err)
	c, _ = tbl.Column("c")
	assert.Equal(t, TypeInt, c.Type)
	assert.Equal(t, []string{"a", "c"}, tbl.Names())

	err = tbl.Replace(NewColumn("nope", TypeInt, Int(5), Int(6)))
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	rows := tbl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "y", rows[1]["a"])
	assert.Equal(t, int64(6), rows[1]["c"])
}

func TestFromRows(t *testing.T) {
	tbl, err := FromRows([]map[string]any{
		{"name": "a", "score": 1.0, "tags": []any{"x", "y"}},
		{"name": "b", "extra": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"name", "score", "tags", "extra"}, tbl.Names())

	tags, ok := tbl.Column("tags")
	require.True(t, ok)
	assert.Equal(t, TypeList, tags.Type)
	assert.True(t, tags.Values[1].IsMissing())

	score, _ := tbl.Column("score")
	assert.Equal(t, TypeNumber, score.Type)
	assert.Equal(t, 0.5, score.MissingFraction())
}

func TestFromRowsNestedObject(t *testing.T) {
	tbl, err := FromRows([]map[string]any{
		{"outer": map[string]any{"inner": "v"}, "flat": "f"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumCols())
	for _, col := range tbl.Columns() {
		assert.Equal(t, TypeText, col.Type)
		if col.Name != "flat" {
			assert.True(t, strings.Contains(col.Name, "inner"))
		}
	}
}

func TestFromRowsMixedKinds(t *testing.T) {
	tbl, err := FromRows([]map[string]any{
		{"a": "1", "b": []any{1.0, 2.0}},
		{"a": 1.0, "b": "x"},
		{"a": true, "b": 5.0},
		{"a": nil},
	})
	require.NoError(t, err)

	a, _ := tbl.Column("a")
	assert.Equal(t, TypeText, a.Type)
	assert.Equal(t, []Value{Text("1"), Text("1"), Text("1"), Missing()}, a.Values)

	b, _ := tbl.Column("b")
	assert.Equal(t, TypeList, b.Type)
	assert.Equal(t, KindList, b.Values[0].Kind())
	assert.Equal(t, Text("x"), b.Values[1])
	assert.Equal(t, Number(5), b.Values[2])
}

func TestCoerceText(t *testing.T) {
	in := []Value{Text("a"), Int(2), Number(1.5), Missing(), List(Text("x"))}
	assert.Equal(t, []Value{Text("a"), Text("2"), Text("1.5"), Missing(), Text("[x]")}, CoerceText(in))
	assert.Equal(t, Int(2), in[1])
}

func TestFromNDJSON(t *testing.T) {
	tbl, err := FromNDJSON(strings.NewReader("{\"a\": \"x\"}\n\n{\"a\": null, \"b\": 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"a", "b"}, tbl.Names())

	_, err = FromNDJSON(strings.NewReader("[1, 2]\n"))
	assert.True(t, errors.Is(err, ErrNotJSONObject))
}
