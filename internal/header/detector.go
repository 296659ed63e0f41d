package header

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/sift/internal/grid"
	"github.com/Veraticus/sift/internal/sheet"
)

const (
	// DefaultSearchWindow is the number of leading rows scanned for a header.
	DefaultSearchWindow = 10
	// SampleRows is the number of rows below the header used to infer types.
	SampleRows = 10
)

// ColumnInfo describes one header column.
type ColumnInfo struct {
	Name   string   `json:"name"`
	Type   DataType `json:"type"`
	Region string   `json:"region"`
}

// Table is the data body beneath a header row.
type Table struct {
	Columns []string  `json:"columns"`
	Rows    grid.Grid `json:"rows"`
}

// Result is the outcome of FindHeaderRowAndColumns.
type Result struct {
	Region     string       `json:"region"`
	Columns    []string     `json:"columns"`
	ColumnInfo []ColumnInfo `json:"column_info"`
	Table      Table        `json:"table"`
	HeaderRow  int          `json:"header_row"`
	StartRow   int          `json:"start_row"`
}

// Options tunes header detection.
type Options struct {
	// Window is the number of leading rows considered as header candidates.
	Window int
	// SampleRows is the number of data rows used for type votes.
	SampleRows int
	// Columns optionally gives the zero-based sheet column of each island
	// column. Without it columns count from the region's start column.
	Columns []int
}

// FindHeaderRowAndColumns locates the header row within the first window
// rows of island, then builds per-column metadata. region is the island's
// region in sheet coordinates and startRow the zero-based sheet row the
// island begins at.
//
// An island with no rows or no columns yields HeaderRow -1 and empty fields.
func FindHeaderRowAndColumns(island grid.Grid, window int, region string, startRow int) Result {
	return Find(island, region, startRow, Options{Window: window, SampleRows: SampleRows})
}

// Find is FindHeaderRowAndColumns with explicit options.
func Find(island grid.Grid, region string, startRow int, opts Options) Result {
	if len(island) == 0 || island.Cols() == 0 {
		return Result{
			HeaderRow:  -1,
			Columns:    []string{},
			ColumnInfo: []ColumnInfo{},
			Table:      Table{Columns: []string{}, Rows: grid.Grid{}},
			StartRow:   startRow,
		}
	}
	if opts.Window <= 0 {
		opts.Window = DefaultSearchWindow
	}
	if opts.SampleRows <= 0 {
		opts.SampleRows = SampleRows
	}

	island = grid.Normalize(island)
	headerRow := selectHeaderRow(island, opts.Window)

	columns := make([]string, len(island[headerRow]))
	for i, c := range island[headerRow] {
		columns[i] = c.String()
	}

	span := sheet.ParseRegionOrDefault(region)
	newRegion := span
	newRegion.StartRow = span.StartRow + headerRow
	if newRegion.EndRow < newRegion.StartRow {
		newRegion.EndRow = newRegion.StartRow
	}

	firstDataRow := newRegion.StartRow + 1
	if firstDataRow > newRegion.EndRow {
		firstDataRow = newRegion.StartRow
	}

	info := make([]ColumnInfo, len(columns))
	for i, name := range columns {
		col := span.StartCol + i
		if len(opts.Columns) == len(columns) {
			col = opts.Columns[i]
		}
		info[i] = ColumnInfo{
			Name:   name,
			Type:   dominantType(island, i, headerRow+1, opts.SampleRows),
			Region: sheet.ColumnRegion(col, firstDataRow, newRegion.EndRow),
		}
	}

	slog.Debug("Detected header row",
		"header_row", headerRow,
		"region", newRegion.String(),
		"columns", len(columns))

	return Result{
		HeaderRow:  headerRow,
		Columns:    columns,
		Region:     newRegion.String(),
		StartRow:   startRow + headerRow + 1,
		ColumnInfo: info,
		Table: Table{
			Columns: columns,
			Rows:    island.Slice(headerRow+1, len(island), columnIndexes(len(columns))),
		},
	}
}

// selectHeaderRow returns the highest scoring row among the first window
// rows; the earliest row wins ties.
func selectHeaderRow(g grid.Grid, window int) int {
	limit := min(window, len(g))
	best, bestScore := 0, scoreRow(g[0])
	for r := 1; r < limit; r++ {
		if s := scoreRow(g[r]); s > bestScore {
			best, bestScore = r, s
		}
	}
	return best
}

// scoreRow counts distinct text labels and subtracts blank cells.
func scoreRow(row []grid.Cell) int {
	labels := make(map[string]struct{}, len(row))
	blanks := 0
	for _, c := range row {
		switch GetDataType(c) {
		case TypeEmpty:
			blanks++
		case TypeString:
			labels[strings.TrimSpace(c.String())] = struct{}{}
		}
	}
	return len(labels) - blanks
}

// dominantType takes a majority vote over up to limit non-empty cells of col
// starting at row from. Ties go to the type seen first.
func dominantType(g grid.Grid, col, from, limit int) DataType {
	type tally struct {
		sample grid.Cell
		votes  int
	}
	var tallies []*tally

	for r := from; r < len(g) && r < from+limit; r++ {
		c := g.At(r, col)
		if c.IsEmpty() {
			continue
		}
		matched := false
		for _, t := range tallies {
			if CompareDataTypes(t.sample, c) {
				t.votes++
				matched = true
				break
			}
		}
		if !matched {
			tallies = append(tallies, &tally{sample: c, votes: 1})
		}
	}

	winner, most := TypeEmpty, 0
	for _, t := range tallies {
		if t.votes > most {
			winner, most = GetDataType(t.sample), t.votes
		}
	}
	return winner
}

func columnIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
