package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/sift/internal/amount"
	"github.com/Veraticus/sift/internal/header"
	"github.com/Veraticus/sift/internal/model"
	"github.com/Veraticus/sift/internal/pipeline"
	"github.com/Veraticus/sift/internal/schema"
	"github.com/charmbracelet/lipgloss"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// RenderResult writes a summary box and the column table for one result.
func RenderResult(w io.Writer, res *pipeline.Result) error {
	title := res.Source
	if res.Sheet != "" {
		title += " › " + res.Sheet
	}

	if !res.Found() {
		_, err := fmt.Fprintln(w, RenderBox(title, FormatWarning("No table found")))
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  • Island: %s\n", FormatRegion(res.IslandRegion))
	fmt.Fprintf(&b, "  • Cleaned region: %s\n", FormatRegion(res.Region))
	fmt.Fprintf(&b, "  • Header row: %d (data starts at sheet row %d)\n", res.HeaderRow, res.StartRow+1)
	fmt.Fprintf(&b, "  • Data rows: %d\n", res.RowCount)

	if res.Mapping.Complete() {
		b.WriteString(FormatSuccess("Statement columns mapped"))
	} else {
		missing := make([]string, len(res.Mapping.Missing))
		for i, f := range res.Mapping.Missing {
			missing[i] = string(f)
		}
		b.WriteString(FormatWarning("Missing fields: " + strings.Join(missing, ", ")))
	}

	fields := make(map[int]schema.Field, len(res.Mapping.Assignments))
	for _, a := range res.Mapping.Assignments {
		fields[a.Index] = a.Field
	}
	rows := make([][]string, len(res.ColumnInfo))
	for i, c := range res.ColumnInfo {
		rows[i] = []string{c.Name, FormatType(c.Type), FormatRegion(c.Region), FormatField(string(fields[i]))}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		b.String(),
		"",
		RenderTable([]string{"Column", "Type", "Region", "Field"}, rows),
	)
	_, err := fmt.Fprintln(w, RenderBox(title, content))
	return err
}

// RenderPatterns writes amount patterns as a table.
func RenderPatterns(w io.Writer, patterns []amount.Pattern) error {
	if len(patterns) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No values in range"))
		return err
	}

	rows := make([][]string, len(patterns))
	for i, p := range patterns {
		shape := p.Pattern
		if shape == "" {
			shape = SubtleStyle.Render("(digits only)")
		}
		rows[i] = []string{shape, p.ExampleValue}
	}
	_, err := fmt.Fprintln(w, RenderTable([]string{"Pattern", "Example"}, rows))
	return err
}

// RenderValues writes distinct values one per line.
func RenderValues(w io.Writer, values []string) error {
	if len(values) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No values in range"))
		return err
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(w, "  "+v); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory writes a table of saved ingestions.
func RenderHistory(w io.Writer, ingestions []model.Ingestion) error {
	if len(ingestions) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No saved results yet. Run: sift detect --save <files>"))
		return err
	}

	rows := make([][]string, len(ingestions))
	for i, ing := range ingestions {
		headerRow := strconv.Itoa(ing.HeaderRow)
		if !ing.HasHeader() {
			headerRow = SubtleStyle.Render(placeholder)
		}
		rows[i] = []string{
			strconv.FormatInt(ing.ID, 10),
			ing.CreatedAt.Local().Format("2006-01-02 15:04"),
			ing.Source,
			ing.Sheet,
			FormatRegion(ing.Region),
			headerRow,
			strconv.Itoa(ing.RowCount),
		}
	}
	_, err := fmt.Fprintln(w, RenderTable(
		[]string{"ID", "Saved", "Source", "Sheet", "Region", "Header", "Rows"}, rows))
	return err
}

// RenderIngestion writes one saved ingestion with its columns.
func RenderIngestion(w io.Writer, ing *model.Ingestion) error {
	var b strings.Builder
	fmt.Fprintf(&b, "  • Saved: %s\n", ing.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  • Island: %s\n", FormatRegion(ing.IslandRegion))
	fmt.Fprintf(&b, "  • Cleaned region: %s\n", FormatRegion(ing.Region))
	fmt.Fprintf(&b, "  • Header row: %d\n", ing.HeaderRow)
	fmt.Fprintf(&b, "  • Data rows: %d", ing.RowCount)

	rows := make([][]string, len(ing.Columns))
	for i, c := range ing.Columns {
		rows[i] = []string{c.Name, FormatType(header.DataType(c.Type)), FormatRegion(c.Region), FormatField(c.MappedField)}
	}

	title := fmt.Sprintf("#%d %s", ing.ID, ing.Source)
	if ing.Sheet != "" {
		title += " › " + ing.Sheet
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		b.String(),
		"",
		RenderTable([]string{"Column", "Type", "Region", "Field"}, rows),
	)
	_, err := fmt.Fprintln(w, RenderBox(title, content))
	return err
}

// RenderTable lays out rows under headers with padded columns.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = TableCellStyle.Render(cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	lines := []string{TableHeaderStyle.Render(line(headers))}
	for _, row := range rows {
		lines = append(lines, line(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
