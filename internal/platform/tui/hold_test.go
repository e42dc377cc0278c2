package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

func TestHoldTrackerWindow(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Press(core.KeyArrowLeft, t0)

	tests := []struct {
		at   time.Duration
		held bool
	}{
		{0, true},
		{50 * time.Millisecond, true},
		{99 * time.Millisecond, true},
		{100 * time.Millisecond, false},
	}

	for _, tc := range tests {
		in := h.State(t0.Add(tc.at))
		if got := in.Key(core.KeyArrowLeft); got != tc.held {
			t.Errorf("State(+%v) left = %v, expected %v", tc.at, got, tc.held)
		}
	}
}

func TestHoldTrackerRepeatExtends(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Press(core.KeySpace, t0)
	h.Press(core.KeySpace, t0.Add(80*time.Millisecond))

	if !h.State(t0.Add(150 * time.Millisecond)).Key(core.KeySpace) {
		t.Error("a repeat should keep the key held")
	}
}

func TestHoldTrackerReleaseAndReset(t *testing.T) {
	h := NewHoldTracker(0)
	t0 := time.Unix(0, 0)

	h.Press(core.KeyW, t0)
	h.Press(core.KeyD, t0)
	h.Release(core.KeyW)

	in := h.State(t0)
	if in.Key(core.KeyW) || !in.Key(core.KeyD) {
		t.Errorf("after Release(w): w=%v d=%v, expected false/true", in.Key(core.KeyW), in.Key(core.KeyD))
	}

	h.Reset()
	if h.State(t0).Key(core.KeyD) {
		t.Error("Reset() should release every key")
	}
}

func TestGameKey(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Key
		ok       bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.KeyArrowLeft, true},
		{tea.KeyMsg{Type: tea.KeyRight}, core.KeyArrowRight, true},
		{tea.KeyMsg{Type: tea.KeyUp}, core.KeyArrowUp, true},
		{tea.KeyMsg{Type: tea.KeyDown}, core.KeyArrowDown, true},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.KeySpace, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, core.KeyW, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'A'}}, core.KeyA, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "", false},
		{tea.KeyMsg{Type: tea.KeyEnter}, "", false},
	}

	for _, tc := range tests {
		got, ok := gameKey(tc.msg)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("gameKey(%q) = %q, %v, expected %q, %v", tc.msg.String(), got, ok, tc.expected, tc.ok)
		}
	}
}
