// Package island locates the main block of data inside a sparse grid.
//
// An island is a band of consecutive non-empty rows together with the column
// span its cells occupy. The detector returns the largest such bounding box
// as a region string and as a re-indexed sub-grid.
package island

import (
	"log/slog"

	"github.com/Veraticus/sift/internal/grid"
	"github.com/Veraticus/sift/internal/sheet"
)

// box is an inclusive, zero-based bounding box.
type box struct {
	top, bottom int
	left, right int
}

func (b box) area() int {
	return (b.bottom - b.top + 1) * (b.right - b.left + 1)
}

// beats orders candidates: larger area first, then lower start row, then
// lower start column.
func (b box) beats(o box) bool {
	if b.area() != o.area() {
		return b.area() > o.area()
	}
	if b.top != o.top {
		return b.top < o.top
	}
	return b.left < o.left
}

func (b box) region() string {
	return sheet.Region{
		StartCol: b.left,
		StartRow: b.top + 1,
		EndCol:   b.right,
		EndRow:   b.bottom + 1,
	}.String()
}

// Island is a detected block of data.
type Island struct {
	Region  string
	Grid    grid.Grid
	Columns []int // Zero-based sheet column of each Grid column
}

// Detect finds the largest island at or below startRow. It returns the
// island's 1-based region string and the sub-grid for that box with fully
// empty columns removed. An empty grid, an out-of-range startRow or a grid
// with no data yields ("", empty grid).
func Detect(g grid.Grid, startRow int) (string, grid.Grid) {
	isl := Locate(g, startRow)
	return isl.Region, isl.Grid
}

// Locate is Detect that also reports which sheet column each island column
// came from.
func Locate(g grid.Grid, startRow int) Island {
	if len(g) == 0 || startRow < 0 || startRow >= len(g) {
		return Island{Grid: grid.Grid{}}
	}

	g = grid.Normalize(g)
	candidates := bands(g, startRow)
	if len(candidates) == 0 {
		return Island{Grid: grid.Grid{}}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.beats(best) {
			best = c
		}
	}

	region := best.region()
	cols := occupiedColumns(g, best)
	island := g.Slice(best.top, best.bottom+1, cols)

	slog.Debug("Detected island",
		"region", region,
		"candidates", len(candidates),
		"rows", len(island),
		"cols", len(cols))

	return Island{Region: region, Grid: island, Columns: cols}
}

// bands groups consecutive occupied rows and records the column span of
// each group.
func bands(g grid.Grid, startRow int) []box {
	var (
		out    []box
		cur    box
		inBand bool
	)

	for r := startRow; r < len(g); r++ {
		first, last, ok := occupiedSpan(g[r])
		if !ok {
			if inBand {
				out = append(out, cur)
				inBand = false
			}
			continue
		}

		if !inBand {
			cur = box{top: r, bottom: r, left: first, right: last}
			inBand = true
			continue
		}

		cur.bottom = r
		cur.left = min(cur.left, first)
		cur.right = max(cur.right, last)
	}

	if inBand {
		out = append(out, cur)
	}

	return out
}

// occupiedSpan returns the first and last non-empty column of a row.
func occupiedSpan(row []grid.Cell) (first, last int, ok bool) {
	first, last = -1, -1
	for c, cell := range row {
		if cell.IsEmpty() {
			continue
		}
		if first < 0 {
			first = c
		}
		last = c
	}
	return first, last, first >= 0
}

// occupiedColumns lists the columns of the box holding data in any row.
func occupiedColumns(g grid.Grid, b box) []int {
	cols := make([]int, 0, b.right-b.left+1)
	for c := b.left; c <= b.right; c++ {
		for r := b.top; r <= b.bottom; r++ {
			if !g.At(r, c).IsEmpty() {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}
