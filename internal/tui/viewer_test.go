package tui

import (
	"context"
	"testing"

	"github.com/Veraticus/sift/internal/pipeline"
	"github.com/Veraticus/sift/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(t *testing.T) *pipeline.Result {
	t.Helper()
	source := [][]string{
		{"Date", "Description", "Amount"},
		{"2024-01-02", "Coffee", "-4.50"},
		{"2024-01-03", "Rent", "-1200.00"},
		{"2024-01-04", "Payroll", "1500.00"},
	}
	res, err := pipeline.New(nil).Run(context.Background(), source, pipeline.DefaultOptions())
	require.NoError(t, err)
	res.Source = "statement.csv"
	return res
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestNew(t *testing.T) {
	m := New(testResult(t), themes.Default)

	assert.Nil(t, m.Init())
	assert.Len(t, m.VisibleRows(), 3)
	assert.Equal(t, "Coffee", m.VisibleRows()[0][1])

	view := m.View()
	assert.Contains(t, view, "statement.csv")
	assert.Contains(t, view, "Description")
	assert.Contains(t, view, "Row 1/3")
	assert.Contains(t, view, "mapped")
}

func TestUpdate_Navigation(t *testing.T) {
	m := New(testResult(t), themes.Default)

	m, _ = update(t, m, runes("j"))
	assert.Contains(t, m.View(), "Row 2/3")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Contains(t, m.View(), "Row 1/3")
}

func TestUpdate_Filter(t *testing.T) {
	m := New(testResult(t), themes.Default)

	m, cmd := update(t, m, runes("/"))
	assert.NotNil(t, cmd)
	assert.True(t, m.searching)

	for _, r := range "rent" {
		m, _ = update(t, m, runes(string(r)))
	}
	require.Len(t, m.VisibleRows(), 1)
	assert.Equal(t, "Rent", m.VisibleRows()[0][1])

	// Enter keeps the filter.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Len(t, m.VisibleRows(), 1)

	// Esc outside search clears it.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.VisibleRows(), 3)
}

func TestUpdate_FilterEscape(t *testing.T) {
	m := New(testResult(t), themes.Default)

	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, runes("x"))
	assert.Empty(t, m.VisibleRows())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Len(t, m.VisibleRows(), 3)
}

func TestUpdate_ToggleInfo(t *testing.T) {
	m := New(testResult(t), themes.Default)

	m, _ = update(t, m, runes("i"))
	view := m.View()
	assert.Contains(t, view, "A2:A4")
	assert.Contains(t, view, "→ amount")

	m, _ = update(t, m, runes("i"))
	assert.NotContains(t, m.View(), "→ amount")
}

func TestUpdate_Quit(t *testing.T) {
	m := New(testResult(t), themes.Default)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_WindowSize(t *testing.T) {
	m := New(testResult(t), themes.Default)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Nil(t, cmd)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
	assert.Equal(t, 100, m.help.Width)
}

func TestView_MissingFields(t *testing.T) {
	res, err := pipeline.New(nil).Run(context.Background(), [][]string{
		{"Name", "City"},
		{"Ada", "London"},
		{"Alan", "Wilmslow"},
	}, pipeline.DefaultOptions())
	require.NoError(t, err)

	view := New(res, themes.CatppuccinMocha).View()
	assert.Contains(t, view, "missing:")
	assert.Contains(t, view, "Detected table")
}

func TestRun_NoTable(t *testing.T) {
	err := Run(context.Background(), &pipeline.Result{HeaderRow: -1}, themes.Default)
	assert.Error(t, err)

	err = Run(context.Background(), nil, themes.Default)
	assert.Error(t, err)
}

func TestByName(t *testing.T) {
	assert.Equal(t, themes.CatppuccinMocha.Primary, themes.ByName("Mocha").Primary)
	assert.Equal(t, themes.Default.Primary, themes.ByName("unknown").Primary)
}
