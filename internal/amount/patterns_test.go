package amount

import (
	"testing"

	"github.com/Veraticus/sift/internal/common"
	"github.com/Veraticus/sift/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amounts() grid.Grid {
	return grid.FromStrings([][]string{
		{"Amount", "Memo"},
		{"$100.00", "Coffee"},
		{"-$200.00", "Rent"},
		{"$300.00", "Coffee"},
	})
}

func TestGroupAmountPatterns(t *testing.T) {
	patterns, err := GroupAmountPatterns(amounts(), "A2:A4")
	require.NoError(t, err)
	require.Len(t, patterns, 2)

	byShape := make(map[string]string)
	for _, p := range patterns {
		byShape[p.Pattern] = p.ExampleValue
	}

	require.Contains(t, byShape, "$")
	require.Contains(t, byShape, "-$")
	assert.Contains(t, []string{"$100.00", "$300.00"}, byShape["$"])
	assert.Equal(t, "-$200.00", byShape["-$"])
}

func TestGroupAmountPatterns_SkipsBlanksAndClampsRows(t *testing.T) {
	g := grid.FromStrings([][]string{
		{"1.00 EUR"},
		{""},
		{"2,50 EUR"},
	})

	patterns, err := GroupAmountPatterns(g, "A1:A50")
	require.NoError(t, err)
	assert.Equal(t, []Pattern{
		{Pattern: "EUR", ExampleValue: "1.00 EUR"},
		{Pattern: ",EUR", ExampleValue: "2,50 EUR"},
	}, patterns)
}

func TestShape(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"$100.00", "$"},
		{"-$200.00", "-$"},
		{"$-200.00", "$-"},
		{" -12.5", "-"},
		{"(45.00)", "()"},
		{"USD 1 000.00", "USD"},
		{"100", ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, Shape(tt.value))
		})
	}
}

func TestGroupColumn(t *testing.T) {
	values, err := GroupColumn(amounts(), "B1:B4")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Memo", "Coffee", "Rent"}, values)
}

func TestGroupColumn_ColumnBeyondGrid(t *testing.T) {
	values, err := GroupColumn(amounts(), "F1:F4")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestMultiColumnRangeIsRejected(t *testing.T) {
	_, err := GroupColumn(amounts(), "A1:B4")
	assert.ErrorIs(t, err, common.ErrMultiColumnRange)

	_, err = GroupAmountPatterns(amounts(), "A1:B4")
	assert.ErrorIs(t, err, common.ErrMultiColumnRange)
}

func TestMalformedRangeIsRejected(t *testing.T) {
	_, err := GroupColumn(amounts(), "A:A")
	assert.ErrorIs(t, err, common.ErrInvalidRange)

	_, err = GroupAmountPatterns(amounts(), "")
	assert.ErrorIs(t, err, common.ErrInvalidRange)
}
