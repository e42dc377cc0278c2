package sim

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

func TestLoopAdvance(t *testing.T) {
	s := newTestSession(player(10, 10, 30, 30))
	var buf InputBuffer
	var frames int
	loop := NewLoop(s, &buf, LoopConfig{}, LoopHooks{AfterStep: func(f Frame) { frames++ }})

	if loop.Interval() != time.Second/DefaultTickRate {
		t.Errorf("Interval() = %v, expected %v", loop.Interval(), time.Second/DefaultTickRate)
	}
	if loop.Advance() {
		t.Error("Advance() should not step a stopped session")
	}

	s.Start()
	buf.Set(keys(core.KeyArrowRight))
	if !loop.Advance() {
		t.Fatal("Advance() should step a running session")
	}
	if frames != 1 {
		t.Errorf("AfterStep called %d times, expected 1", frames)
	}
	if got := s.Frame().Entities[0].Pos.X; got != 15 {
		t.Errorf("Pos.X = %v, expected 15", got)
	}
}

func TestInputBufferCopies(t *testing.T) {
	var buf InputBuffer
	in := keys(core.KeySpace)
	buf.Set(in)
	in.SetKey(core.KeySpace, false)

	if !buf.Input().Key(core.KeySpace) {
		t.Error("Set() should copy the snapshot")
	}
	out := buf.Input()
	out.SetKey(core.KeyA, true)
	if buf.Input().Key(core.KeyA) {
		t.Error("Input() should return a copy")
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	s := newTestSession(player(10, 10, 30, 30))
	s.Start()

	var steps atomic.Int64
	loop := NewLoop(s, nil, LoopConfig{TickRate: 500}, LoopHooks{AfterStep: func(Frame) { steps.Add(1) }})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for steps.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("loop did not step")
		case <-time.After(time.Millisecond):
		}
	}

	// Stopping the session halts stepping even though the loop keeps ticking.
	s.Stop()
	after := steps.Load()
	time.Sleep(20 * time.Millisecond)
	if got := steps.Load(); got > after+1 {
		t.Errorf("loop stepped %d frames after Stop", got-after)
	}
	if s.Frame().State != StateStopped {
		t.Error("a pending frame must not apply after Stop")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, expected nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
