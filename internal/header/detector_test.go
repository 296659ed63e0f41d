package header

import (
	"testing"
	"time"

	"github.com/Veraticus/sift/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDataType(t *testing.T) {
	tests := []struct {
		name string
		cell grid.Cell
		want DataType
	}{
		{"blank", grid.Blank(), TypeEmpty},
		{"empty text", grid.Text(""), TypeEmpty},
		{"whitespace", grid.Text("   "), TypeEmpty},
		{"integer", grid.Text("42"), TypeNumber},
		{"negative decimal", grid.Text("-3.50"), TypeNumber},
		{"signed exponent", grid.Text("+1e10"), TypeNumber},
		{"leading point", grid.Text(".5"), TypeNumber},
		{"padded number", grid.Text(" 12 "), TypeNumber},
		{"numeric cell", grid.Number(7), TypeNumber},
		{"iso date", grid.Text("2024-01-15"), TypeDate},
		{"us date", grid.Text("01/15/2024"), TypeDate},
		{"eu date", grid.Text("15/01/2024"), TypeDate},
		{"month name", grid.Text("Jan 15, 2024"), TypeDate},
		{"date and time", grid.Text("2024-01-15 10:30:00"), TypeDate},
		{"rfc3339", grid.Text("2024-01-15T10:30:00Z"), TypeDate},
		{"time of day", grid.Text("10:30"), TypeDate},
		{"twelve hour", grid.Text("3:04 PM"), TypeDate},
		{"date cell", grid.Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), TypeDate},
		{"word", grid.Text("Coffee"), TypeString},
		{"currency", grid.Text("$100.00"), TypeString},
		{"thousands separator", grid.Text("1,234.56"), TypeString},
		{"nan", grid.Text("NaN"), TypeString},
		{"infinity", grid.Text("Inf"), TypeString},
		{"nested list", grid.FromValue([]int{1, 2}), TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetDataType(tt.cell))
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, TypeEmpty, TypeOf(nil))
	assert.Equal(t, TypeNumber, TypeOf(3.25))
	assert.Equal(t, TypeString, TypeOf(map[string]int{"a": 1}))
}

func TestCompareDataTypes(t *testing.T) {
	assert.True(t, CompareDataTypes(grid.Text("1"), grid.Number(2)))
	assert.True(t, CompareDataTypes(grid.Text("2024-01-01"), grid.Text("01/02/2024")))
	assert.True(t, CompareDataTypes(grid.Text("a"), grid.Text("b")))
	assert.False(t, CompareDataTypes(grid.Text("1"), grid.Text("x")))
	assert.False(t, CompareDataTypes(grid.Blank(), grid.Text("")))
	assert.False(t, CompareDataTypes(grid.Text("1"), grid.Blank()))
}

func TestFindHeaderRowAndColumns_FirstRowHeader(t *testing.T) {
	island := grid.FromStrings([][]string{
		{"Date", "Description", "Amount"},
		{"2024-01-02", "Coffee", "-4.50"},
		{"2024-01-03", "Books", "-12.00"},
		{"2024-01-04", "Payroll", "1500"},
	})

	res := FindHeaderRowAndColumns(island, DefaultSearchWindow, "B2:D5", 1)

	assert.Equal(t, 0, res.HeaderRow)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, res.Columns)
	assert.Equal(t, "B2:D5", res.Region)
	assert.Equal(t, 2, res.StartRow)
	assert.Equal(t, []ColumnInfo{
		{Name: "Date", Type: TypeDate, Region: "B3:B5"},
		{Name: "Description", Type: TypeString, Region: "C3:C5"},
		{Name: "Amount", Type: TypeNumber, Region: "D3:D5"},
	}, res.ColumnInfo)

	assert.Equal(t, res.Columns, res.Table.Columns)
	require.Len(t, res.Table.Rows, 3)
	assert.Equal(t, "Coffee", res.Table.Rows[0][1].String())
}

func TestFindHeaderRowAndColumns_SkipsTitleRows(t *testing.T) {
	island := grid.FromStrings([][]string{
		{"ACME Bank statement", "", ""},
		{"Date", "Description", "Amount"},
		{"01/02/2024", "Coffee", "-4.50"},
		{"01/03/2024", "", "-12.00"},
		{"01/04/2024", "Payroll", "1500.00"},
	})

	res := FindHeaderRowAndColumns(island, DefaultSearchWindow, "A1:C5", 0)

	assert.Equal(t, 1, res.HeaderRow)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, res.Columns)
	assert.Equal(t, "A2:C5", res.Region)
	assert.Equal(t, 2, res.StartRow)
	assert.Equal(t, "A3:A5", res.ColumnInfo[0].Region)
	assert.Equal(t, TypeDate, res.ColumnInfo[0].Type)
	assert.Len(t, res.Table.Rows, 3)
}

func TestFindHeaderRowAndColumns_WindowLimitsSearch(t *testing.T) {
	island := grid.FromStrings([][]string{
		{"1", "2", "3"},
		{"4", "5", "6"},
		{"Date", "Memo", "Amount"},
	})

	res := FindHeaderRowAndColumns(island, 2, "A1:C3", 0)
	assert.Equal(t, 0, res.HeaderRow)

	res = FindHeaderRowAndColumns(island, 3, "A1:C3", 0)
	assert.Equal(t, 2, res.HeaderRow)
	// No data rows below the header: column regions collapse onto it.
	assert.Equal(t, "A3:A3", res.ColumnInfo[0].Region)
	assert.Equal(t, TypeEmpty, res.ColumnInfo[0].Type)
	assert.Empty(t, res.Table.Rows)
}

func TestFindHeaderRowAndColumns_TieKeepsEarliestRow(t *testing.T) {
	island := grid.FromStrings([][]string{
		{"Posted", "Payee"},
		{"Cleared", "Memo"},
		{"2024-01-01", "Coffee"},
	})

	res := FindHeaderRowAndColumns(island, DefaultSearchWindow, "A1:B3", 0)
	assert.Equal(t, 0, res.HeaderRow)
}

func TestFindHeaderRowAndColumns_MalformedRegionUsesDefaultSpan(t *testing.T) {
	island := grid.FromStrings([][]string{
		{"Date", "Amount"},
		{"2024-01-02", "1"},
	})

	res := FindHeaderRowAndColumns(island, DefaultSearchWindow, "???", 0)

	assert.Equal(t, "A1:Z1000", res.Region)
	assert.Equal(t, "A2:A1000", res.ColumnInfo[0].Region)
	assert.Equal(t, "B2:B1000", res.ColumnInfo[1].Region)
}

func TestFindHeaderRowAndColumns_NotAGrid(t *testing.T) {
	g, ok := grid.Coerce(42)
	require.False(t, ok)

	res := FindHeaderRowAndColumns(g, DefaultSearchWindow, "A1:C3", 0)

	assert.Equal(t, -1, res.HeaderRow)
	assert.Equal(t, []string{}, res.Columns)
	assert.Empty(t, res.ColumnInfo)
	assert.Equal(t, "", res.Region)
}

func TestDominantType(t *testing.T) {
	g := grid.FromStrings([][]string{
		{"h", "h", "h", "h"},
		{"1", "x", "", "2024-01-01"},
		{"2", "1", "", "1"},
		{"x", "", "", "2024-02-01"},
	})

	assert.Equal(t, TypeNumber, dominantType(g, 0, 1, SampleRows))
	assert.Equal(t, TypeString, dominantType(g, 1, 1, SampleRows))
	assert.Equal(t, TypeEmpty, dominantType(g, 2, 1, SampleRows))
	assert.Equal(t, TypeDate, dominantType(g, 3, 1, SampleRows))
	assert.Equal(t, TypeNumber, dominantType(g, 0, 1, 2))
}

func TestFind_NoColumnsLeft(t *testing.T) {
	island := grid.Grid{{}, {}, {}}

	res := Find(island, "", 5, Options{})

	assert.Equal(t, -1, res.HeaderRow)
	assert.Equal(t, 5, res.StartRow)
	assert.Equal(t, "", res.Region)
	assert.Equal(t, []string{}, res.Columns)
	assert.Empty(t, res.ColumnInfo)
}

func TestFind_SheetColumns(t *testing.T) {
	island := grid.FromStrings([][]string{
		{"Date", "Amount"},
		{"2024-01-02", "-4.50"},
		{"2024-01-03", "12.00"},
	})
	opts := Options{Columns: []int{1, 4}}

	res := Find(island, "B1:E3", 0, opts)

	require.Len(t, res.ColumnInfo, 2)
	assert.Equal(t, "B2:B3", res.ColumnInfo[0].Region)
	assert.Equal(t, "E2:E3", res.ColumnInfo[1].Region)

	opts.Columns = []int{1}
	res = Find(island, "B1:E3", 0, opts)
	assert.Equal(t, "C2:C3", res.ColumnInfo[1].Region)
}
