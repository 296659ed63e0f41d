package island

import (
	"testing"

	"github.com/Veraticus/sift/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bankStatement has eight rows and five columns; column C is blank
// throughout and the remaining four columns are sparsely filled.
func bankStatement() grid.Grid {
	return grid.FromStrings([][]string{
		{"Date", "Description", "", "Amount", "Balance"},
		{"2024-01-02", "Coffee", "", "-4.50", "995.50"},
		{"2024-01-03", "", "", "-20.00", "975.50"},
		{"2024-01-04", "Payroll", "", "1500.00", ""},
		{"", "Transfer", "", "-100.00", "2375.50"},
		{"2024-01-06", "Groceries", "", "", "2300.00"},
		{"2024-01-07", "Rent", "", "-1200.00", "1100.00"},
		{"2024-01-08", "Interest", "", "0.45", "1100.45"},
	})
}

func TestDetect_BankStatement(t *testing.T) {
	region, island := Detect(bankStatement(), 0)

	assert.Equal(t, "A1:E8", region)
	require.Len(t, island, 8)
	assert.Equal(t, 4, island.Cols())
	assert.Equal(t, []string{"Date", "Description", "Amount", "Balance"}, island.Strings()[0])
}

func TestLocate_Columns(t *testing.T) {
	isl := Locate(bankStatement(), 0)

	assert.Equal(t, "A1:E8", isl.Region)
	assert.Equal(t, []int{0, 1, 3, 4}, isl.Columns)
	assert.Equal(t, len(isl.Columns), isl.Grid.Cols())

	assert.Empty(t, Locate(nil, 0).Columns)
}

func TestDetect_SingleBlock(t *testing.T) {
	g := grid.FromStrings([][]string{
		{"", "", "", "", "", ""},
		{"", "", "", "", "", ""},
		{"", "a", "b", "c", "", ""},
		{"", "1", "2", "3", "", ""},
		{"", "4", "5", "6", "", ""},
		{"", "", "", "", "", ""},
	})

	region, island := Detect(g, 0)

	assert.Equal(t, "B3:D5", region)
	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
		{"4", "5", "6"},
	}, island.Strings())
}

func TestDetect_LargestBandWins(t *testing.T) {
	g := grid.FromStrings([][]string{
		{"Account Statement", "", ""},
		{"", "", ""},
		{"Date", "Memo", "Amount"},
		{"01/02/2024", "Coffee", "-4.50"},
		{"01/03/2024", "Books", "-12.00"},
		{"", "", ""},
		{"Total", "", "-16.50"},
	})

	region, island := Detect(g, 0)

	assert.Equal(t, "A3:C5", region)
	assert.Len(t, island, 3)
}

func TestDetect_TieBreaksOnLowestRow(t *testing.T) {
	g := grid.FromStrings([][]string{
		{"", "x", "y"},
		{"", "", ""},
		{"p", "q", ""},
	})

	region, island := Detect(g, 0)

	assert.Equal(t, "B1:C1", region)
	assert.Equal(t, [][]string{{"x", "y"}}, island.Strings())
}

func TestDetect_StartRow(t *testing.T) {
	g := bankStatement()

	region, island := Detect(g, 3)
	assert.Equal(t, "A4:E8", region)
	assert.Len(t, island, 5)

	region, island = Detect(g, 8)
	assert.Equal(t, "", region)
	assert.Empty(t, island)

	region, island = Detect(g, -1)
	assert.Equal(t, "", region)
	assert.Empty(t, island)
}

func TestDetect_EmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		g    grid.Grid
	}{
		{"nil grid", nil},
		{"no rows", grid.Grid{}},
		{"only blanks", grid.FromStrings([][]string{{"", " "}, {"\t", ""}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, island := Detect(tt.g, 0)
			assert.Equal(t, "", region)
			assert.NotNil(t, island)
			assert.Empty(t, island)
		})
	}
}

func TestDetect_RaggedInput(t *testing.T) {
	g := grid.Grid{
		{grid.Text("a")},
		{grid.Text("b"), grid.Text("c"), grid.Text("d")},
	}

	region, island := Detect(g, 0)

	assert.Equal(t, "A1:C2", region)
	assert.Equal(t, [][]string{{"a", "", ""}, {"b", "c", "d"}}, island.Strings())
}

func TestDetect_Deterministic(t *testing.T) {
	g := bankStatement()
	r1, i1 := Detect(g, 0)
	r2, i2 := Detect(g, 0)
	assert.Equal(t, r1, r2)
	assert.Equal(t, i1, i2)
}
