package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-gamebuilder/internal/registry"
)

type screen int

const (
	screenPicker screen = iota
	screenGame
	screenScores
)

// AppModel manages the full flow: picker -> game -> picker, with the
// best runs screen reachable from the picker.
type AppModel struct {
	opts     Options
	width    int
	height   int
	current  screen
	picker   PickerModel
	game     *GameModel
	scores   ScoreboardModel
	direct   bool // opened straight into a template; back quits
	quitting bool
}

// NewAppModel creates the top-level model. If start is non-empty the app
// opens that template directly.
func NewAppModel(opts Options, start string, width, height int) (AppModel, error) {
	opts = opts.withDefaults()
	m := AppModel{
		opts:   opts,
		width:  width,
		height: height,
		picker: NewPickerModel(opts.Store, width, height),
	}
	if start != "" {
		game, err := registry.Create(start)
		if err != nil {
			return AppModel{}, err
		}
		gm := NewGameModel(game, opts, width, height)
		m.game = &gm
		m.current = screenGame
		m.direct = true
	}
	return m, nil
}

// Init initializes the active screen.
func (m AppModel) Init() tea.Cmd {
	if m.current == screenGame {
		return m.game.Init()
	}
	return m.picker.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if p, ok := newPicker.(PickerModel); ok {
		m.picker = p
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.picker.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.opts.Store, m.width, m.height)
		m.current = screenScores
		return m, m.scores.Init()
	}

	if id := m.picker.Selected(); id != "" {
		game, err := registry.Create(id)
		if err != nil {
			// The picker only lists registered templates.
			m.opts.Logger.Error("cannot open template", "template", id, "error", err)
			m.picker = NewPickerModel(m.opts.Store, m.width, m.height)
			return m, nil
		}
		gm := NewGameModel(game, m.opts, m.width, m.height)
		m.game = &gm
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.game.Close()
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game.Close()
		m.game = nil
		if m.direct {
			m.quitting = true
			return m, tea.Quit
		}
		m.current = screenPicker
		m.picker = NewPickerModel(m.opts.Store, m.width, m.height)
		return m, m.picker.Init()
	}

	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if s, ok := newScores.(ScoreboardModel); ok {
		m.scores = s
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.current = screenPicker
		m.picker = NewPickerModel(m.opts.Store, m.width, m.height)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.picker.View()
	}
}

// Close stops a run in progress. Safe to call after the program exits.
func (m AppModel) Close() {
	if m.game != nil {
		m.game.Close()
	}
}

// Run starts the app on the local terminal and blocks until the user quits.
func Run(opts Options, start string, width, height int) error {
	m, err := NewAppModel(opts, start, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.opts.Context))
	final, err := p.Run()
	if am, ok := final.(AppModel); ok {
		am.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.opts.Context.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
