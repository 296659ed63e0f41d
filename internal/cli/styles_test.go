package cli

import (
	"testing"

	"github.com/Veraticus/sift/internal/header"
	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{"success", FormatSuccess, SuccessIcon},
		{"error", FormatError, ErrorIcon},
		{"warning", FormatWarning, WarningIcon},
		{"info", FormatInfo, InfoIcon},
		{"title", FormatTitle, SiftIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("hello")
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "hello")
		})
	}
}

func TestRenderBox(t *testing.T) {
	out := RenderBox("Title", "body text")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
	assert.Contains(t, out, "╭")
}

func TestFormatType(t *testing.T) {
	for _, typ := range []header.DataType{header.TypeNumber, header.TypeDate, header.TypeString, header.TypeEmpty} {
		assert.Contains(t, FormatType(typ), string(typ))
	}
	assert.Equal(t, "currency", FormatType("currency"))
}

func TestFormatRegionAndField(t *testing.T) {
	assert.Contains(t, FormatRegion("D2:D8"), "D2:D8")
	assert.Contains(t, FormatRegion(""), placeholder)
	assert.Contains(t, FormatField("amount"), "amount")
	assert.Contains(t, FormatField(""), placeholder)
}

func TestRenderBox_Title(t *testing.T) {
	assert.Contains(t, RenderBox("statement.csv", "body"), SiftIcon+" statement.csv")
}
