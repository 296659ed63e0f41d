// Package amount groups the values of a single spreadsheet column, either by
// distinct value or by the non-numeric "shape" of currency amounts.
package amount

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Veraticus/sift/internal/common"
	"github.com/Veraticus/sift/internal/grid"
	"github.com/Veraticus/sift/internal/sheet"
)

// Pattern is one distinct amount shape with a value that produced it.
type Pattern struct {
	Pattern      string `json:"pattern"`
	ExampleValue string `json:"example_value"`
}

// GroupColumn returns the distinct non-empty values found in columnRange,
// in the order they first appear. The range must cover a single column.
func GroupColumn(g grid.Grid, columnRange string) ([]string, error) {
	values, err := columnValues(g, columnRange)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// GroupAmountPatterns groups the values in columnRange by shape and returns
// one Pattern per distinct shape. The range must cover a single column.
func GroupAmountPatterns(g grid.Grid, columnRange string) ([]Pattern, error) {
	values, err := columnValues(g, columnRange)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var out []Pattern
	for _, v := range values {
		shape := Shape(v)
		if _, ok := index[shape]; ok {
			continue
		}
		index[shape] = len(out)
		out = append(out, Pattern{Pattern: shape, ExampleValue: v})
	}
	return out, nil
}

// Shape strips digits, decimal points and whitespace from an amount. A
// leading minus sign on the original value is always kept at the front.
func Shape(value string) string {
	shape := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)

	if strings.HasPrefix(strings.TrimSpace(value), "-") && !strings.HasPrefix(shape, "-") {
		shape = "-" + shape
	}
	return shape
}

// columnValues returns the non-empty cell texts of a single-column range.
func columnValues(g grid.Grid, columnRange string) ([]string, error) {
	r, ok := sheet.ParseRegion(columnRange)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidRange, columnRange)
	}
	if r.StartCol != r.EndCol {
		return nil, fmt.Errorf("%w: %q", common.ErrMultiColumnRange, columnRange)
	}

	var values []string
	for row := r.StartRow - 1; row < r.EndRow && row < len(g); row++ {
		c := g.At(row, r.StartCol)
		if c.IsEmpty() {
			continue
		}
		values = append(values, c.String())
	}
	return values, nil
}
