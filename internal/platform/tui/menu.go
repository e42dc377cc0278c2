package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/registry"
	"github.com/vovakirdan/tui-gamebuilder/internal/storage"
)

// PickerModel is the Bubble Tea model for the template picker.
type PickerModel struct {
	games          []registry.GameInfo
	store          *storage.Store
	table          table.Model
	help           help.Model
	keys           PickerKeyMap
	width          int
	height         int
	quitting       bool
	selected       string // Set when user picks a template
	openScoreboard bool   // True if user pressed Tab for best runs
}

// NewPickerModel creates a new picker over the registered templates.
func NewPickerModel(store *storage.Store, width, height int) PickerModel {
	m := PickerModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultPickerKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	return m
}

// createTable builds the template table for the current size.
func (m *PickerModel) createTable() table.Model {
	descWidth := max(m.width-4-14-16-8-8, 12)
	columns := []table.Column{
		{Title: "Template", Width: 12},
		{Title: "Title", Width: 14},
		{Title: "Best", Width: 6},
		{Title: "Description", Width: descWidth},
	}

	best := make(map[string]int)
	if m.store != nil {
		if stats, err := m.store.AllStats(); err == nil {
			for id, st := range stats {
				best[id] = st.BestScore
			}
		}
	}

	rows := make([]table.Row, len(m.games))
	for i, g := range m.games {
		b := "-"
		if score, ok := best[g.ID]; ok {
			b = fmt.Sprintf("%d", score)
		}
		rows[i] = table.Row{g.ID, g.Title, b, g.Description}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(core.Clamp(len(rows)+1, 3, max(m.height-7, 3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Scores):
			m.openScoreboard = true
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if row := m.table.SelectedRow(); row != nil {
				m.selected = row[0]
			}
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("G A M E   B U I L D E R", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a template to edit and play", m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the picked template id, or empty if none.
func (m PickerModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the best runs screen.
func (m PickerModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
