package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-gamebuilder/internal/registry"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected AppModel", next)
	}
	return am, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestAppPickerOpensTemplate(t *testing.T) {
	m, err := NewAppModel(Options{}, "", 100, 30)
	if err != nil {
		t.Fatalf("NewAppModel() error = %v", err)
	}
	if m.current != screenPicker {
		t.Fatalf("current = %v, expected picker", m.current)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatalf("current after enter = %v, expected game", m.current)
	}
	if got, want := m.game.game.ID(), registry.List()[0].ID; got != want {
		t.Errorf("opened template = %q, expected %q", got, want)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenPicker || m.game != nil {
		t.Errorf("esc did not return to the picker")
	}

	_, cmd := send(t, m, runes("q"))
	if !isQuit(cmd) {
		t.Errorf("q in picker did not quit")
	}
}

func TestAppDirectStart(t *testing.T) {
	if _, err := NewAppModel(Options{}, "no-such-template", 80, 24); err == nil {
		t.Errorf("NewAppModel(unknown) expected error")
	}

	m, err := NewAppModel(Options{}, "breakout", 100, 30)
	if err != nil {
		t.Fatalf("NewAppModel() error = %v", err)
	}
	if m.current != screenGame {
		t.Fatalf("current = %v, expected game", m.current)
	}

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !isQuit(cmd) {
		t.Errorf("back from a direct start did not quit")
	}
}

func TestAppScoreboard(t *testing.T) {
	m, err := NewAppModel(Options{}, "", 100, 30)
	if err != nil {
		t.Fatalf("NewAppModel() error = %v", err)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScores {
		t.Fatalf("current after tab = %v, expected scores", m.current)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenPicker {
		t.Errorf("current after esc = %v, expected picker", m.current)
	}
}

func TestGameModelEditing(t *testing.T) {
	m, err := NewAppModel(Options{}, "breakout", 100, 30)
	if err != nil {
		t.Fatalf("NewAppModel() error = %v", err)
	}
	count := func() int { return len(m.game.Engine().Session().EditorEntities()) }

	if n := count(); n != 8 {
		t.Fatalf("entities = %d, expected 8", n)
	}
	first := m.game.Selected()
	if first == 0 {
		t.Fatalf("no entity selected")
	}

	m, _ = send(t, m, runes("a"))
	if n := count(); n != 9 {
		t.Errorf("entities after add = %d, expected 9", n)
	}

	m, _ = send(t, m, runes("c"))
	if n := count(); n != 10 {
		t.Errorf("entities after duplicate = %d, expected 10", n)
	}

	m, _ = send(t, m, runes("x"))
	if n := count(); n != 9 {
		t.Errorf("entities after remove = %d, expected 9", n)
	}

	m, _ = send(t, m, runes("R"))
	if n := count(); n != 8 {
		t.Errorf("entities after reset = %d, expected 8", n)
	}
}

func TestGameModelNudge(t *testing.T) {
	m, err := NewAppModel(Options{}, "breakout", 100, 30)
	if err != nil {
		t.Fatalf("NewAppModel() error = %v", err)
	}
	pos := func() (x float64) {
		for _, e := range m.game.Engine().Session().EditorEntities() {
			if e.ID == m.game.Selected() {
				return e.Pos.X
			}
		}
		t.Fatalf("selected entity missing")
		return 0
	}

	before := pos()
	m, _ = send(t, m, runes("l"))
	if got, want := pos(), before+m.game.viewport().Scale; got != want {
		t.Errorf("x after nudge = %v, expected %v", got, want)
	}
}

func TestGameModelRunStop(t *testing.T) {
	m, err := NewAppModel(Options{}, "platformer", 100, 30)
	if err != nil {
		t.Fatalf("NewAppModel() error = %v", err)
	}
	defer m.Close()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.game.Engine().Running() {
		t.Fatalf("enter did not start the run")
	}

	// Editing keys are ignored while running.
	m, _ = send(t, m, runes("a"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game.Engine().Running() {
		t.Errorf("enter did not stop the run")
	}
	if m.game.last == nil {
		t.Errorf("stopped run left no result")
	}
}
