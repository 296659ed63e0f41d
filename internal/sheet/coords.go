// Package sheet implements spreadsheet coordinate algebra: column letters,
// cell names and "A1:C10" region strings.
//
// Columns are addressed by zero-based index in Go code and by bijective
// base-26 letters (A=1 ... Z=26, AA=27) in region strings. Rows inside region
// strings are 1-based.
package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// regionPattern matches "<Letters><Digits>:<Letters><Digits>".
var regionPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+):([A-Z]+)([0-9]+)$`)

// DefaultRegion is the conservative span returned by ParseRegionOrDefault
// when a region string cannot be parsed.
var DefaultRegion = Region{StartCol: 0, StartRow: 1, EndCol: 25, EndRow: 1000}

// Region is an inclusive rectangular cell range. Columns are zero-based
// indexes, rows are 1-based as they appear in the region string.
type Region struct {
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// String renders the region as "A1:C10".
func (r Region) String() string {
	return CellName(r.StartCol, r.StartRow) + ":" + CellName(r.EndCol, r.EndRow)
}

// Width is the number of columns covered by the region.
func (r Region) Width() int {
	return r.EndCol - r.StartCol + 1
}

// Height is the number of rows covered by the region.
func (r Region) Height() int {
	return r.EndRow - r.StartRow + 1
}

// ColumnIndex converts column letters to a zero-based index. It returns
// (-1, false) for anything that is not a run of uppercase ASCII letters.
func ColumnIndex(letters string) (int, bool) {
	// 13 letters already exceed int64.
	if letters == "" || len(letters) > 12 {
		return -1, false
	}

	value := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return -1, false
		}
		value = value*26 + int(r-'A'+1)
	}

	return value - 1, true
}

// ColumnLetter converts a zero-based column index to letters.
// Negative indexes yield the empty string.
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}

	var buf [16]byte
	pos := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		pos--
		buf[pos] = byte('A' + (n-1)%26)
	}

	return string(buf[pos:])
}

// CellName returns the A1-style name for a zero-based column and a 1-based row.
func CellName(col, row int) string {
	return ColumnLetter(col) + strconv.Itoa(row)
}

// IncrementLetters returns the column letters n positions after col.
// Invalid letters are returned unchanged.
func IncrementLetters(col string, n int) string {
	idx, ok := ColumnIndex(col)
	if !ok || idx+n < 0 {
		return col
	}
	return ColumnLetter(idx + n)
}

// IncrementColumn is the loosely typed form of IncrementLetters used when the
// column comes straight from a decoded cell. Non-string values, nil included,
// are returned as-is.
func IncrementColumn(col any, n int) any {
	s, ok := col.(string)
	if !ok {
		return col
	}
	return IncrementLetters(s, n)
}

// ParseRegion parses a region string strictly. The second return value is
// false when the string does not have the "A1:C10" shape, uses a zero row, or
// has its end before its start.
func ParseRegion(s string) (Region, bool) {
	m := regionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Region{}, false
	}

	startCol, ok := ColumnIndex(m[1])
	if !ok {
		return Region{}, false
	}
	endCol, ok := ColumnIndex(m[3])
	if !ok {
		return Region{}, false
	}
	startRow, err := strconv.Atoi(m[2])
	if err != nil || startRow < 1 {
		return Region{}, false
	}
	endRow, err := strconv.Atoi(m[4])
	if err != nil || endRow < 1 {
		return Region{}, false
	}

	r := Region{StartCol: startCol, StartRow: startRow, EndCol: endCol, EndRow: endRow}
	if r.EndCol < r.StartCol || r.EndRow < r.StartRow {
		return Region{}, false
	}

	return r, true
}

// ParseRegionOrDefault parses a region string, falling back to DefaultRegion
// (A1:Z1000) when it is malformed.
func ParseRegionOrDefault(s string) Region {
	if r, ok := ParseRegion(s); ok {
		return r
	}
	return DefaultRegion
}

// UpdateRegion narrows a region after columns have been removed. dropped holds
// column offsets counted from the region's left edge; offsets outside the
// region and duplicates are ignored. The start cell is kept and the end column
// moves left by the number of dropped columns. A malformed region, or one
// with no columns left, yields "".
func UpdateRegion(region string, dropped []int) string {
	r, ok := ParseRegion(region)
	if !ok {
		return ""
	}

	width := r.Width()
	seen := make(map[int]struct{}, len(dropped))
	for _, off := range dropped {
		if off < 0 || off >= width {
			continue
		}
		seen[off] = struct{}{}
	}

	remaining := width - len(seen)
	if remaining < 1 {
		return ""
	}

	r.EndCol = r.StartCol + remaining - 1
	return r.String()
}

// ColumnRegion returns the single-column region for col spanning rows
// startRow..endRow (1-based, inclusive).
func ColumnRegion(col, startRow, endRow int) string {
	if endRow < startRow {
		endRow = startRow
	}
	return fmt.Sprintf("%s:%s", CellName(col, startRow), CellName(col, endRow))
}
