package core

// Signal represents a logical held input, abstracted from the physical device
// (keyboard key or on-screen touch button).
type Signal int

const (
	SignalLeft Signal = iota
	SignalRight
	SignalUp
	SignalDown
	SignalJump
	signalCount
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalLeft:
		return "Left"
	case SignalRight:
		return "Right"
	case SignalUp:
		return "Up"
	case SignalDown:
		return "Down"
	case SignalJump:
		return "Jump"
	default:
		return "Unknown"
	}
}

// Key identifies a raw keyboard key. Some control schemes accept WASD as an
// alternative to the arrows and others do not, so the raw identity is kept
// alongside the logical signals.
type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeySpace      Key = " "
	KeyW          Key = "w"
	KeyA          Key = "a"
	KeyS          Key = "s"
	KeyD          Key = "d"
)

// InputState is the per-frame input snapshot consumed by the simulation.
// Signals carry the touch-button state; Keys carries held raw keys.
// The simulation never mutates a snapshot it is given.
type InputState struct {
	Signals [signalCount]bool
	Keys    map[Key]bool
}

// NewInputState creates an empty input snapshot.
func NewInputState() InputState {
	return InputState{Keys: make(map[Key]bool)}
}

// SetSignal marks a logical signal as held or released.
func (s *InputState) SetSignal(sig Signal, held bool) {
	if sig < 0 || sig >= signalCount {
		return
	}
	s.Signals[sig] = held
}

// Signal returns whether the logical signal is held.
func (s InputState) Signal(sig Signal) bool {
	if sig < 0 || sig >= signalCount {
		return false
	}
	return s.Signals[sig]
}

// SetKey marks a raw key as held or released.
func (s *InputState) SetKey(k Key, held bool) {
	if s.Keys == nil {
		s.Keys = make(map[Key]bool)
	}
	if held {
		s.Keys[k] = true
	} else {
		delete(s.Keys, k)
	}
}

// Key returns whether the raw key is held.
func (s InputState) Key(k Key) bool {
	return s.Keys[k]
}

// Held reports whether sig is held either as a touch signal or through any
// of the given raw keys.
func (s InputState) Held(sig Signal, keys ...Key) bool {
	if s.Signal(sig) {
		return true
	}
	for _, k := range keys {
		if s.Keys[k] {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of this snapshot.
func (s InputState) Clone() InputState {
	clone := InputState{Signals: s.Signals, Keys: make(map[Key]bool, len(s.Keys))}
	for k, v := range s.Keys {
		clone.Keys[k] = v
	}
	return clone
}
