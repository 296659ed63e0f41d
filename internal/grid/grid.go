package grid

// Grid is a table of cells indexed by zero-based (row, column). Algorithms
// expect it to be rectangular; Normalize pads ragged input.
type Grid [][]Cell

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the width of the widest row.
func (g Grid) Cols() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// At returns the cell at (row, col), or a blank cell when out of range.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Blank()
	}
	return g[row][col]
}

// RowEmpty reports whether every cell in the row is empty.
func (g Grid) RowEmpty(row int) bool {
	if row < 0 || row >= len(g) {
		return true
	}
	for _, c := range g[row] {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Slice copies rows [r0, r1) restricted to the given columns, in order.
func (g Grid) Slice(r0, r1 int, cols []int) Grid {
	if r0 < 0 {
		r0 = 0
	}
	if r1 > len(g) {
		r1 = len(g)
	}
	out := make(Grid, 0, max(r1-r0, 0))
	for r := r0; r < r1; r++ {
		row := make([]Cell, len(cols))
		for i, c := range cols {
			row[i] = g.At(r, c)
		}
		out = append(out, row)
	}
	return out
}

// Strings renders every cell as text.
func (g Grid) Strings() [][]string {
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.String()
		}
	}
	return out
}

// Normalize returns a rectangular copy of rows, padding short rows with
// blank cells.
func Normalize(rows [][]Cell) Grid {
	width := Grid(rows).Cols()
	out := make(Grid, len(rows))
	for i, row := range rows {
		padded := make([]Cell, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

// FromStrings builds a normalized grid from string records such as those
// produced by encoding/csv or excelize.
func FromStrings(records [][]string) Grid {
	rows := make([][]Cell, len(records))
	for i, rec := range records {
		row := make([]Cell, len(rec))
		for j, v := range rec {
			if v == "" {
				continue
			}
			row[j] = Text(v)
		}
		rows[i] = row
	}
	return Normalize(rows)
}

// FromValues builds a normalized grid from loosely typed rows.
func FromValues(records [][]any) Grid {
	rows := make([][]Cell, len(records))
	for i, rec := range records {
		row := make([]Cell, len(rec))
		for j, v := range rec {
			row[j] = FromValue(v)
		}
		rows[i] = row
	}
	return Normalize(rows)
}

// Coerce turns a 2-D value into a normalized Grid. It returns false for
// anything that is not a two-dimensional table (scalars, flat slices, maps,
// nil).
func Coerce(v any) (Grid, bool) {
	switch v := v.(type) {
	case Grid:
		if v == nil {
			return nil, false
		}
		return Normalize(v), true
	case [][]Cell:
		if v == nil {
			return nil, false
		}
		return Normalize(v), true
	case [][]string:
		if v == nil {
			return nil, false
		}
		return FromStrings(v), true
	case [][]any:
		if v == nil {
			return nil, false
		}
		return FromValues(v), true
	default:
		return nil, false
	}
}
