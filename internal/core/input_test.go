package core

import "testing"

func TestInputStateHeld(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*InputState)
		sig      Signal
		keys     []Key
		expected bool
	}{
		{
			name:     "nothing held",
			setup:    func(*InputState) {},
			sig:      SignalLeft,
			keys:     []Key{KeyArrowLeft, KeyA},
			expected: false,
		},
		{
			name:     "touch signal held",
			setup:    func(s *InputState) { s.SetSignal(SignalLeft, true) },
			sig:      SignalLeft,
			expected: true,
		},
		{
			name:     "bound key held",
			setup:    func(s *InputState) { s.SetKey(KeyA, true) },
			sig:      SignalLeft,
			keys:     []Key{KeyArrowLeft, KeyA},
			expected: true,
		},
		{
			name:     "unbound key held",
			setup:    func(s *InputState) { s.SetKey(KeyA, true) },
			sig:      SignalLeft,
			keys:     []Key{KeyArrowLeft},
			expected: false,
		},
		{
			name: "key released",
			setup: func(s *InputState) {
				s.SetKey(KeySpace, true)
				s.SetKey(KeySpace, false)
			},
			sig:      SignalJump,
			keys:     []Key{KeySpace},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewInputState()
			tc.setup(&s)
			if got := s.Held(tc.sig, tc.keys...); got != tc.expected {
				t.Errorf("Held(%v) = %v, expected %v", tc.sig, got, tc.expected)
			}
		})
	}
}

func TestInputStateClone(t *testing.T) {
	s := NewInputState()
	s.SetKey(KeyArrowUp, true)
	s.SetSignal(SignalJump, true)

	clone := s.Clone()
	s.SetKey(KeyArrowUp, false)
	s.SetSignal(SignalJump, false)

	if !clone.Key(KeyArrowUp) {
		t.Error("Clone should keep ArrowUp held after the original is released")
	}
	if !clone.Signal(SignalJump) {
		t.Error("Clone should keep Jump signal after the original is released")
	}
}

func TestInputStateZeroValue(t *testing.T) {
	var s InputState
	if s.Key(KeySpace) {
		t.Error("zero InputState should have no keys held")
	}
	s.SetKey(KeySpace, true)
	if !s.Key(KeySpace) {
		t.Error("SetKey on zero InputState should allocate and hold the key")
	}
	if s.Signal(Signal(99)) {
		t.Error("out-of-range signal should report not held")
	}
}
