package grid

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellIsEmpty(t *testing.T) {
	assert.True(t, Blank().IsEmpty())
	assert.True(t, Text("").IsEmpty())
	assert.True(t, Text("  \t").IsEmpty())
	assert.True(t, Number(math.NaN()).IsEmpty())
	assert.False(t, Text("x").IsEmpty())
	assert.False(t, Number(0).IsEmpty())
	assert.False(t, Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)).IsEmpty())
}

func TestFromValue(t *testing.T) {
	assert.Equal(t, KindEmpty, FromValue(nil).Kind)
	assert.Equal(t, Text("abc"), FromValue("abc"))
	assert.Equal(t, Number(12), FromValue(12))
	assert.Equal(t, Number(1.5), FromValue(float32(1.5)))
	assert.Equal(t, KindEmpty, FromValue(math.NaN()).Kind)
	assert.Equal(t, Text("true"), FromValue(true))

	nested := FromValue([]int{1, 2})
	assert.Equal(t, KindText, nested.Kind)
	assert.Equal(t, "[1 2]", nested.Text)

	when := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, Date(when), FromValue(when))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Blank().String())
	assert.Equal(t, "12.5", Number(12.5).String())
	assert.Equal(t, "100", Number(100).String())
	assert.Equal(t, "2024-01-02", Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "2024-01-02 08:15:00", Date(time.Date(2024, 1, 2, 8, 15, 0, 0, time.UTC)).String())
}

func TestCellMarshalJSON(t *testing.T) {
	row := []Cell{Blank(), Text("Coffee"), Number(-4.25)}
	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `[null, "Coffee", -4.25]`, string(out))
}

func TestNormalize(t *testing.T) {
	g := Normalize([][]Cell{
		{Text("a")},
		{Text("b"), Text("c"), Text("d")},
		{},
	})
	require.Len(t, g, 3)
	for _, row := range g {
		assert.Len(t, row, 3)
	}
	assert.True(t, g[0][2].IsEmpty())
	assert.True(t, g.RowEmpty(2))
	assert.False(t, g.RowEmpty(1))
}

func TestCoerce(t *testing.T) {
	g, ok := Coerce([][]string{{"a", ""}, {"b"}})
	require.True(t, ok)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Cols())
	assert.True(t, g[0][1].IsEmpty())

	g, ok = Coerce([][]any{{"x", 1, nil}})
	require.True(t, ok)
	assert.Equal(t, Number(1), g[0][1])

	for _, bad := range []any{42, "text", []string{"a"}, map[string]any{}, nil, Grid(nil)} {
		_, ok := Coerce(bad)
		assert.False(t, ok, "%#v", bad)
	}
}

func TestSliceAndClone(t *testing.T) {
	g := FromStrings([][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
		{"g", "h", "i"},
	})

	s := g.Slice(1, 3, []int{0, 2})
	assert.Equal(t, [][]string{{"d", "f"}, {"g", "i"}}, s.Strings())

	c := g.Clone()
	c[0][0] = Text("changed")
	assert.Equal(t, "a", g[0][0].String())
}
