// Package grid holds the in-memory table model shared by the detection
// stages: a rectangular grid of tagged cells.
package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Kind tags the value held by a Cell.
type Kind int

// Cell kinds.
const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a single grid value. Only the field matching Kind is meaningful.
type Cell struct {
	Time time.Time
	Text string
	Num  float64
	Kind Kind
}

// Blank returns the empty marker.
func Blank() Cell { return Cell{} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }

// Number returns a numeric cell. NaN is treated as a missing value.
func Number(f float64) Cell {
	if math.IsNaN(f) {
		return Cell{}
	}
	return Cell{Kind: KindNumber, Num: f}
}

// Date returns a date/time cell.
func Date(t time.Time) Cell { return Cell{Kind: KindDate, Time: t} }

// FromValue converts an arbitrary decoded value into a Cell. Anything that is
// not a scalar (slices, maps, structs) becomes text.
func FromValue(v any) Cell {
	switch v := v.(type) {
	case nil:
		return Blank()
	case Cell:
		return v
	case string:
		return Text(v)
	case []byte:
		return Text(string(v))
	case time.Time:
		return Date(v)
	case *time.Time:
		if v == nil {
			return Blank()
		}
		return Date(*v)
	case bool:
		return Text(strconv.FormatBool(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return Text(fmt.Sprint(v))
		}
		return Number(f)
	default:
		return Text(fmt.Sprint(v))
	}
}

// IsEmpty reports whether the cell is the empty marker or whitespace-only text.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case KindEmpty:
		return true
	case KindText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// String coerces the cell to text.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindDate:
		if h, m, s := c.Time.Clock(); h == 0 && m == 0 && s == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value (nil, string, float64 or time.Time).
func (c Cell) Value() any {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return c.Num
	case KindDate:
		return c.Time
	default:
		return nil
	}
}

// MarshalJSON encodes empty cells as null, numbers as numbers and everything
// else as strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindEmpty:
		return []byte("null"), nil
	case KindNumber:
		return json.Marshal(c.Num)
	default:
		return json.Marshal(c.String())
	}
}
