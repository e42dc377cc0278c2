package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

// DefaultHoldWindow is how long a key stays held after its last press.
const DefaultHoldWindow = 150 * time.Millisecond

// HoldTracker turns terminal key presses into held keys. Terminals report
// presses and auto-repeats but never releases, so a key counts as held
// until one window has passed without a repeat.
type HoldTracker struct {
	window  time.Duration
	pressed map[core.Key]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window selects
// DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{window: window, pressed: make(map[core.Key]time.Time)}
}

// Press records a press of k at now.
func (h *HoldTracker) Press(k core.Key, now time.Time) {
	h.pressed[k] = now
}

// Release forgets k immediately.
func (h *HoldTracker) Release(k core.Key) {
	delete(h.pressed, k)
}

// Reset releases every key.
func (h *HoldTracker) Reset() {
	clear(h.pressed)
}

// State returns the keys held at now. Expired keys are dropped.
func (h *HoldTracker) State(now time.Time) core.InputState {
	in := core.NewInputState()
	for k, at := range h.pressed {
		if now.Sub(at) >= h.window {
			delete(h.pressed, k)
			continue
		}
		in.SetKey(k, true)
	}
	return in
}

// gameKey maps a terminal key to the simulation key it stands for.
func gameKey(msg tea.KeyMsg) (core.Key, bool) {
	switch msg.Type {
	case tea.KeyLeft:
		return core.KeyArrowLeft, true
	case tea.KeyRight:
		return core.KeyArrowRight, true
	case tea.KeyUp:
		return core.KeyArrowUp, true
	case tea.KeyDown:
		return core.KeyArrowDown, true
	case tea.KeySpace:
		return core.KeySpace, true
	case tea.KeyRunes:
		switch strings.ToLower(string(msg.Runes)) {
		case "w":
			return core.KeyW, true
		case "a":
			return core.KeyA, true
		case "s":
			return core.KeyS, true
		case "d":
			return core.KeyD, true
		case " ":
			return core.KeySpace, true
		}
	}
	return "", false
}
