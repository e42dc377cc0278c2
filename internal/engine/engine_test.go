package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
)

func newSession() *sim.Session {
	cfg := sim.Config{
		Gravity:      sim.Float(0),
		CanvasWidth:  800,
		CanvasHeight: 600,
		Scheme:       sim.SchemeTopDown,
	}
	player := sim.Entity{
		Kind:    "player",
		Pos:     core.Vec2{X: 100, Y: 100},
		Size:    core.Vec2{X: 40, Y: 40},
		Control: &sim.Control{Speed: 5},
	}
	return sim.NewSession(cfg, []sim.Entity{player})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestEngineRunAndStop(t *testing.T) {
	s := newSession()
	e := New(s, WithTickRate(200), WithSamplePeriod(10*time.Millisecond))

	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !e.Running() || s.State() != sim.StateRunning {
		t.Fatal("engine should be running after Start()")
	}
	if err := e.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v, expected ErrAlreadyRunning", err)
	}

	in := core.NewInputState()
	in.SetKey(core.KeyArrowRight, true)
	e.SetInput(in)

	waitFor(t, func() bool { return s.Frame().Number >= 5 })

	res, err := e.Stop()
	if err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if res.Frames < 5 {
		t.Errorf("Frames = %d, expected at least 5", res.Frames)
	}
	if res.HUD.Lives != sim.DefaultLives {
		t.Errorf("Lives = %d, expected %d", res.HUD.Lives, sim.DefaultLives)
	}
	if e.Running() || s.State() != sim.StateStopped {
		t.Error("engine should be stopped after Stop()")
	}

	// The editor collection is untouched by the run.
	if got := s.EditorEntities()[0].Pos.X; got != 100 {
		t.Errorf("editor player x = %v, expected 100", got)
	}
}

func TestEngineStopIdle(t *testing.T) {
	e := New(newSession())
	res, err := e.Stop()
	if err != nil {
		t.Fatalf("Stop() on idle engine failed: %v", err)
	}
	if res.Frames != 0 {
		t.Errorf("Frames = %d, expected 0", res.Frames)
	}
}

func TestEngineObserver(t *testing.T) {
	var seen atomic.Int64
	var lastState atomic.Int64
	e := New(newSession(),
		WithTickRate(200),
		WithSamplePeriod(5*time.Millisecond),
		WithObserver(func(f sim.Frame) {
			seen.Add(1)
			lastState.Store(int64(f.State))
		}),
	)

	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitFor(t, func() bool { return seen.Load() >= 3 })
	if _, err := e.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}

	if sim.State(lastState.Load()) != sim.StateStopped {
		t.Error("observer should receive the stopped frame")
	}
}

func TestEngineParentCancel(t *testing.T) {
	s := newSession()
	e := New(s, WithTickRate(200))

	ctx, cancel := context.WithCancel(context.Background())
	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	cancel()

	n := s.Frame().Number
	time.Sleep(30 * time.Millisecond)
	// At most one frame can slip through after cancellation.
	if got := s.Frame().Number; got > n+1 {
		t.Errorf("frames advanced from %d to %d after cancel", n, got)
	}
	if _, err := e.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
}
