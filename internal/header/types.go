// Package header finds the header row of an island and infers a type for
// every column beneath it.
package header

import (
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/sift/internal/grid"
	"github.com/spf13/cast"
)

// DataType is the semantic type of a cell or column.
type DataType string

// Data types.
const (
	TypeNumber DataType = "number"
	TypeDate   DataType = "date"
	TypeString DataType = "string"
	TypeEmpty  DataType = "empty"
)

// numberPattern accepts an optional sign, a decimal point and an exponent.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dateLayouts extends the layouts cast knows with the slash and month-name
// forms banks export, plus bare times of day.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2.1.2006",
	"2006/01/02",
	"2006/1/2",
	"02-01-2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-Jan-06",
	"2-Jan-06",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Mon, Jan 2, 2006",
	"01/02/2006 15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/01/02 15:04:05",
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3:04 pm",
}

// GetDataType classifies a single cell.
func GetDataType(c grid.Cell) DataType {
	switch c.Kind {
	case grid.KindNumber:
		return TypeNumber
	case grid.KindDate:
		return TypeDate
	}
	if c.IsEmpty() {
		return TypeEmpty
	}

	s := strings.TrimSpace(c.String())
	if isNumber(s) {
		return TypeNumber
	}
	if isDate(s) {
		return TypeDate
	}
	return TypeString
}

// TypeOf classifies an arbitrary value.
func TypeOf(v any) DataType {
	return GetDataType(grid.FromValue(v))
}

// CompareDataTypes reports whether two cells share the same non-empty type.
func CompareDataTypes(a, b grid.Cell) bool {
	ta := GetDataType(a)
	return ta != TypeEmpty && ta == GetDataType(b)
}

func isNumber(s string) bool {
	return numberPattern.MatchString(s)
}

func isDate(s string) bool {
	if _, err := cast.ToTimeE(s); err == nil {
		return true
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
