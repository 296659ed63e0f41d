// Package tui provides an interactive viewer for detected tables.
package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sift/internal/pipeline"
	"github.com/Veraticus/sift/internal/schema"
	"github.com/Veraticus/sift/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 30
	// Lines used by the title, subtitle, status bar and help.
	chromeHeight = 8
)

// Model is the bubbletea model for browsing one detected table.
type Model struct {
	result    *pipeline.Result
	keys      KeyMap
	theme     themes.Theme
	allRows   []table.Row
	table     table.Model
	search    textinput.Model
	help      help.Model
	width     int
	height    int
	searching bool
	showInfo  bool
}

// New creates a viewer for res.
func New(res *pipeline.Result, theme themes.Theme) Model {
	rows := make([]table.Row, len(res.Body))
	for i, r := range res.Body {
		row := make(table.Row, len(res.Columns))
		for j := range row {
			if j < len(r) {
				row[j] = r[j].String()
			}
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(columnsFor(res, rows)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = theme.Header
	s.Selected = theme.Selected
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Filter rows..."
	searchInput.CharLimit = 50
	searchInput.Prompt = "/ "

	return Model{
		result:  res,
		keys:    DefaultKeyMap(),
		theme:   theme,
		allRows: rows,
		table:   t,
		search:  searchInput,
		help:    help.New(),
	}
}

// columnsFor sizes each column to its widest value within bounds.
func columnsFor(res *pipeline.Result, rows []table.Row) []table.Column {
	columns := make([]table.Column, len(res.Columns))
	for i, name := range res.Columns {
		width := lipgloss.Width(name)
		for _, r := range rows {
			width = max(width, lipgloss.Width(r[i]))
		}
		columns[i] = table.Column{
			Title: name,
			Width: min(max(width, minColumnWidth), maxColumnWidth),
		}
	}
	return columns
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-chromeHeight, 3))
		m.table.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.ToggleInfo):
			m.showInfo = !m.showInfo
			return m, nil
		case key.Matches(msg, m.keys.ToggleSearch):
			m.searching = true
			cmd := m.search.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.ClearSearch):
			m.search.SetValue("")
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter keeps rows containing the search text in any cell, ignoring
// case.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if query == "" {
		m.table.SetRows(m.allRows)
		return
	}

	var filtered []table.Row
	for _, row := range m.allRows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), query) {
				filtered = append(filtered, row)
				break
			}
		}
	}
	m.table.SetRows(filtered)
	m.table.GotoTop()
}

// VisibleRows returns the rows currently shown.
func (m Model) VisibleRows() []table.Row {
	return m.table.Rows()
}

// View implements tea.Model.
func (m Model) View() string {
	title := m.theme.Title.Render(m.titleText())
	subtitle := m.theme.Subtitle.Render(fmt.Sprintf("Island %s · Region %s · Header row %d · %d rows",
		m.result.IslandRegion, m.result.Region, m.result.HeaderRow, m.result.RowCount))

	body := m.theme.RoundedBox.Render(m.table.View())
	if m.showInfo {
		body = m.theme.RoundedBox.Render(m.infoView())
	}

	parts := []string{title, subtitle, body, m.statusLine()}
	if m.searching || m.search.Value() != "" {
		parts = append(parts, m.search.View())
	}
	parts = append(parts, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) titleText() string {
	title := m.result.Source
	if m.result.Sheet != "" {
		title += " › " + m.result.Sheet
	}
	if title == "" {
		title = "Detected table"
	}
	return title
}

func (m Model) statusLine() string {
	total := len(m.table.Rows())
	pos := 0
	if total > 0 {
		pos = m.table.Cursor() + 1
	}
	status := m.theme.StatusBar.Render(fmt.Sprintf("Row %d/%d", pos, total))

	if m.result.Mapping.Complete() {
		return status + "  " + m.theme.StatusSuccess.Render("mapped")
	}
	missing := make([]string, len(m.result.Mapping.Missing))
	for i, f := range m.result.Mapping.Missing {
		missing[i] = string(f)
	}
	return status + "  " + m.theme.StatusWarning.Render("missing: "+strings.Join(missing, ", "))
}

func (m Model) infoView() string {
	fields := make(map[int]schema.Field, len(m.result.Mapping.Assignments))
	for _, a := range m.result.Mapping.Assignments {
		fields[a.Index] = a.Field
	}

	lines := make([]string, 0, len(m.result.ColumnInfo))
	for i, c := range m.result.ColumnInfo {
		line := fmt.Sprintf("%-20s %-7s %-10s", c.Name, c.Type, c.Region)
		if f, ok := fields[i]; ok {
			line += " → " + string(f)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "No columns"
	}
	return strings.Join(lines, "\n")
}
