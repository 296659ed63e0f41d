// Package cli renders sift's terminal output: detection summaries, column
// tables, progress and interrupt handling.
package cli

import (
	"github.com/Veraticus/sift/internal/header"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.Color("#5FAFD7")
	okColor      = lipgloss.Color("#4ECDC4")
	warnColor    = lipgloss.Color("#FFE66D")
	errColor     = lipgloss.Color("#FF6B6B")
	noteColor    = lipgloss.Color("#95E1D3")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#333333")
	numberColor  = lipgloss.Color("#87D787")
	dateColor    = lipgloss.Color("#D7AFFF")
	regionColor  = lipgloss.Color("#AFD7FF")
	mappingColor = lipgloss.Color("#FFD787")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	successStyle = lipgloss.NewStyle().Foreground(okColor)
	warningStyle = lipgloss.NewStyle().Foreground(warnColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errColor)
	infoStyle    = lipgloss.NewStyle().Foreground(noteColor)

	// SubtleStyle dims placeholders and secondary text.
	SubtleStyle = lipgloss.NewStyle().Foreground(mutedColor)

	// RegionStyle highlights A1-style cell ranges.
	RegionStyle = lipgloss.NewStyle().Foreground(regionColor)

	// FieldStyle marks the statement field a column was mapped to.
	FieldStyle = lipgloss.NewStyle().Bold(true).Foreground(mappingColor)

	// TypeStyles colors a column by its detected type.
	TypeStyles = map[header.DataType]lipgloss.Style{
		header.TypeNumber: lipgloss.NewStyle().Foreground(numberColor),
		header.TypeDate:   lipgloss.NewStyle().Foreground(dateColor),
		header.TypeString: lipgloss.NewStyle(),
		header.TypeEmpty:  SubtleStyle,
	}

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// TableHeaderStyle underlines the header line of RenderTable.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(borderColor)

	// TableCellStyle separates RenderTable columns.
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	SiftIcon    = "▦"
)

// placeholder stands in for an empty region or an unmapped column.
const placeholder = "-"

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return successStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return errorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return warningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return infoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle prefixes title with the sift icon.
func FormatTitle(title string) string {
	return titleStyle.Render(SiftIcon + " " + title)
}

// FormatType renders a detected column type in its color. Unknown types
// render unstyled.
func FormatType(t header.DataType) string {
	style, ok := TypeStyles[t]
	if !ok {
		return string(t)
	}
	return style.Render(string(t))
}

// FormatRegion renders a cell range, or a dimmed placeholder when empty.
func FormatRegion(region string) string {
	if region == "" {
		return SubtleStyle.Render(placeholder)
	}
	return RegionStyle.Render(region)
}

// FormatField renders a mapped statement field, or a dimmed placeholder for
// an unmapped column.
func FormatField(field string) string {
	if field == "" {
		return SubtleStyle.Render(placeholder)
	}
	return FieldStyle.Render(field)
}

// RenderBox renders content in a rounded box under a sift title.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		FormatTitle(title),
		content,
	))
}
