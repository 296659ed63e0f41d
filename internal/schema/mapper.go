// Package schema maps detected columns onto the fields of a bank statement.
package schema

import (
	"strings"
	"unicode"

	"github.com/Veraticus/sift/internal/header"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Field is a target schema field.
type Field string

// Statement fields, in assignment order.
const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldDebit       Field = "debit"
	FieldCredit      Field = "credit"
	FieldAmount      Field = "amount"
	FieldBalance     Field = "balance"
	FieldReference   Field = "reference"
)

// Spec describes how a field is recognized.
type Spec struct {
	Field    Field
	Synonyms []string
	Types    []header.DataType
}

// DefaultSpecs is the bank statement schema.
var DefaultSpecs = []Spec{
	{
		Field:    FieldDate,
		Synonyms: []string{"date", "posted", "posting date", "booking date", "value date", "trans date"},
		Types:    []header.DataType{header.TypeDate, header.TypeString},
	},
	{
		Field:    FieldDescription,
		Synonyms: []string{"description", "details", "narrative", "memo", "payee", "merchant", "name", "transaction"},
		Types:    []header.DataType{header.TypeString},
	},
	{
		Field:    FieldDebit,
		Synonyms: []string{"debit", "withdrawal", "withdrawals", "money out", "paid out", "dr"},
		Types:    []header.DataType{header.TypeNumber, header.TypeString},
	},
	{
		Field:    FieldCredit,
		Synonyms: []string{"credit", "deposit", "deposits", "money in", "paid in", "cr"},
		Types:    []header.DataType{header.TypeNumber, header.TypeString},
	},
	{
		Field:    FieldAmount,
		Synonyms: []string{"amount", "amt", "value", "sum", "transaction amount"},
		Types:    []header.DataType{header.TypeNumber, header.TypeString},
	},
	{
		Field:    FieldBalance,
		Synonyms: []string{"balance", "running balance", "bal"},
		Types:    []header.DataType{header.TypeNumber, header.TypeString},
	},
	{
		Field:    FieldReference,
		Synonyms: []string{"reference", "ref", "check number", "cheque number", "fitid", "id"},
		Types:    []header.DataType{header.TypeString, header.TypeNumber},
	},
}

// Assignment binds a field to a detected column.
type Assignment struct {
	Field  Field  `json:"field"`
	Column string `json:"column"`
	Region string `json:"region"`
	Index  int    `json:"index"`
}

// Mapping is the result of mapping columns to the schema.
type Mapping struct {
	Assignments []Assignment `json:"assignments"`
	Missing     []Field      `json:"missing,omitempty"`
	Unmapped    []string     `json:"unmapped,omitempty"`
}

// Column returns the column bound to field.
func (m Mapping) Column(field Field) (Assignment, bool) {
	for _, a := range m.Assignments {
		if a.Field == field {
			return a, true
		}
	}
	return Assignment{}, false
}

// Complete reports whether every required field was found.
func (m Mapping) Complete() bool {
	return len(m.Missing) == 0
}

// Map assigns columns to DefaultSpecs.
func Map(columns []header.ColumnInfo) Mapping {
	return MapWith(columns, DefaultSpecs)
}

// MapWith assigns columns to fields. Fields are tried in spec order and each
// takes the earliest unused column whose label contains one of its synonyms
// and whose type is compatible. Columns of type empty fit any field.
func MapWith(columns []header.ColumnInfo, specs []Spec) Mapping {
	labels := make([][]string, len(columns))
	for i, c := range columns {
		labels[i] = tokens(c.Name)
	}

	used := make([]bool, len(columns))
	m := Mapping{Assignments: []Assignment{}}

	for _, spec := range specs {
		for i, c := range columns {
			if used[i] || !compatible(c.Type, spec.Types) || !matchesAny(labels[i], spec.Synonyms) {
				continue
			}
			used[i] = true
			m.Assignments = append(m.Assignments, Assignment{
				Field:  spec.Field,
				Column: c.Name,
				Region: c.Region,
				Index:  i,
			})
			break
		}
	}

	for i, c := range columns {
		if !used[i] {
			m.Unmapped = append(m.Unmapped, c.Name)
		}
	}
	m.Missing = missing(m)

	return m
}

func missing(m Mapping) []Field {
	var out []Field
	for _, f := range []Field{FieldDate, FieldDescription} {
		if _, ok := m.Column(f); !ok {
			out = append(out, f)
		}
	}

	// Money needs a signed amount column or a debit and credit pair.
	_, amount := m.Column(FieldAmount)
	_, debit := m.Column(FieldDebit)
	_, credit := m.Column(FieldCredit)
	switch {
	case amount || (debit && credit):
	case debit:
		out = append(out, FieldCredit)
	case credit:
		out = append(out, FieldDebit)
	default:
		out = append(out, FieldAmount)
	}
	return out
}

func compatible(t header.DataType, allowed []header.DataType) bool {
	if t == header.TypeEmpty {
		return true
	}
	for _, a := range allowed {
		if a == t {
			return true
		}
	}
	return false
}

func matchesAny(label []string, synonyms []string) bool {
	for _, syn := range synonyms {
		if containsRun(label, tokens(syn)) {
			return true
		}
	}
	return false
}

// containsRun reports whether needle appears as a contiguous run in hay.
func containsRun(hay, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(hay) {
		return false
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		match := true
		for j, n := range needle {
			if hay[i+j] != n {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Normalize folds case and compatibility forms and collapses punctuation to
// single spaces.
func Normalize(label string) string {
	return strings.Join(tokens(label), " ")
}

func tokens(label string) []string {
	folded := cases.Fold().String(norm.NFKC.String(label))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
