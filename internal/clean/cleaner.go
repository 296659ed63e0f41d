// Package clean trims sparse columns out of a detected island.
package clean

import (
	"log/slog"

	"github.com/Veraticus/sift/internal/grid"
	"github.com/Veraticus/sift/internal/sheet"
)

// DefaultThreshold is the minimum non-empty fraction a column needs to survive.
const DefaultThreshold = 0.1

// ColumnDensity returns, for each column, the fraction of rows holding a
// non-empty cell.
func ColumnDensity(g grid.Grid) []float64 {
	if len(g) == 0 {
		return nil
	}

	width := g.Cols()
	counts := make([]int, width)
	for _, row := range g {
		for c := 0; c < width && c < len(row); c++ {
			if !row[c].IsEmpty() {
				counts[c]++
			}
		}
	}

	density := make([]float64, width)
	rows := float64(len(g))
	for c, n := range counts {
		density[c] = float64(n) / rows
	}
	return density
}

// Clean drops columns whose density is below threshold and narrows region
// to match. A threshold of 1 or more keeps every column. The input grid is
// not modified; an empty grid returns the region untouched.
func Clean(g grid.Grid, region string, threshold float64) (grid.Grid, string) {
	cleaned, newRegion, _ := CleanColumns(g, region, threshold)
	return cleaned, newRegion
}

// CleanColumns is Clean that also returns the offsets of the kept columns.
func CleanColumns(g grid.Grid, region string, threshold float64) (grid.Grid, string, []int) {
	if len(g) == 0 {
		return grid.Grid{}, region, nil
	}

	var keep, dropped []int
	for c, d := range ColumnDensity(g) {
		if threshold < 1 && d < threshold {
			dropped = append(dropped, c)
			continue
		}
		keep = append(keep, c)
	}

	if len(dropped) > 0 {
		slog.Debug("Dropping sparse columns",
			"region", region,
			"dropped", dropped,
			"threshold", threshold)
	}

	return g.Slice(0, len(g), keep), sheet.UpdateRegion(region, dropped), keep
}
