package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

func newTestSession(entities ...Entity) *Session {
	cfg := Config{CanvasWidth: 800, CanvasHeight: 600, Scheme: SchemeTopDown, Seed: 1}
	return NewSession(cfg, entities)
}

func TestNewSessionAssignsIDs(t *testing.T) {
	a, b := player(10, 10, 30, 30), box(100, 100, 20, 20)
	a.ID, b.ID = 42, 42
	s := newTestSession(a, b)

	got := s.EditorEntities()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("ids = %v, %v; expected 1, 2", got[0].ID, got[1].ID)
	}
	if s.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", s.State())
	}
	if f := s.Frame(); f.HUD != (HUD{Lives: DefaultLives}) || len(f.Entities) != 2 {
		t.Errorf("initial Frame() = %+v", f)
	}
}

func TestEditorOperations(t *testing.T) {
	s := newTestSession(player(10, 10, 30, 30))

	id, err := s.Add(box(200, 200, 40, 40))
	if err != nil || id != 2 {
		t.Fatalf("Add() = %v, %v; expected 2, nil", id, err)
	}

	if err := s.Move(id, core.Vec2{X: 300, Y: 310}); err != nil {
		t.Fatalf("Move() error: %v", err)
	}

	dup, err := s.Duplicate(id)
	if err != nil || dup != 3 {
		t.Fatalf("Duplicate() = %v, %v; expected 3, nil", dup, err)
	}
	entities := s.EditorEntities()
	if got := entities[2].Pos; got.X != 350 || got.Y != 360 {
		t.Errorf("duplicate Pos = %+v, expected (350, 360)", got)
	}

	if err := s.Update(dup, func(e *Entity) {
		e.ID = 99
		e.Deadly = true
	}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	entities = s.EditorEntities()
	if entities[2].ID != dup || !entities[2].Deadly {
		t.Errorf("Update() result = %+v; id must stay %d", entities[2], dup)
	}

	if err := s.Remove(id); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if len(s.EditorEntities()) != 2 {
		t.Errorf("len = %d after Remove, expected 2", len(s.EditorEntities()))
	}

	next, _ := s.Add(box(0, 0, 10, 10))
	if next != 4 {
		t.Errorf("Add() after Remove = %d, expected 4 (ids are never reused)", next)
	}

	if err := s.Remove(id); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Remove(removed) = %v, expected ErrUnknownEntity", err)
	}
}

func TestEditingWhileRunning(t *testing.T) {
	s := newTestSession(player(10, 10, 30, 30))
	s.Start()

	if _, err := s.Add(box(0, 0, 10, 10)); !errors.Is(err, ErrSessionRunning) {
		t.Errorf("Add() = %v, expected ErrSessionRunning", err)
	}
	if err := s.Move(1, core.Vec2{}); !errors.Is(err, ErrSessionRunning) {
		t.Errorf("Move() = %v, expected ErrSessionRunning", err)
	}
	if err := s.Remove(1); !errors.Is(err, ErrSessionRunning) {
		t.Errorf("Remove() = %v, expected ErrSessionRunning", err)
	}
	if _, err := s.Duplicate(1); !errors.Is(err, ErrSessionRunning) {
		t.Errorf("Duplicate() = %v, expected ErrSessionRunning", err)
	}
}

func TestStepWhileStopped(t *testing.T) {
	s := newTestSession(player(10, 10, 30, 30))
	if err := s.Step(none()); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Step() = %v, expected ErrNotRunning", err)
	}
}

func TestRunIsolatedFromEditor(t *testing.T) {
	s := newTestSession(player(10, 10, 30, 30))
	s.Start()
	for i := 0; i < 10; i++ {
		if err := s.Step(keys(core.KeyArrowRight)); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}

	f := s.Frame()
	if f.State != StateRunning || f.Number != 10 {
		t.Errorf("Frame() state/number = %v/%d, expected running/10", f.State, f.Number)
	}
	if got := f.Entities[0].Pos.X; got != 60 {
		t.Errorf("running Pos.X = %v, expected 60", got)
	}
	if got := s.EditorEntities()[0].Pos.X; got != 10 {
		t.Errorf("editor Pos.X = %v, expected 10 (run must not leak)", got)
	}

	s.Stop()
	f = s.Frame()
	if f.State != StateStopped || f.Entities[0].Pos.X != 10 || len(f.Particles) != 0 {
		t.Errorf("after Stop Frame() = %+v, expected editor collection", f)
	}
}

func TestPublishedFrameIsStable(t *testing.T) {
	s := newTestSession(player(10, 10, 30, 30))
	s.Start()
	_ = s.Step(keys(core.KeyArrowRight))
	prev := s.Frame()
	_ = s.Step(keys(core.KeyArrowRight))

	if prev.Entities[0].Pos.X != 15 {
		t.Errorf("a published frame changed after the next step: Pos.X = %v", prev.Entities[0].Pos.X)
	}
}

func TestStartResetsCountersAndParticles(t *testing.T) {
	spike := box(10, 10, 30, 30)
	spike.Deadly = true
	coin := box(10, 10, 30, 30)
	coin.Collectible = &Collectible{Points: 10}
	s := newTestSession(player(10, 10, 30, 30), coin, spike)

	s.Start()
	_ = s.Step(none())
	f := s.Frame()
	if f.HUD.Lives != DefaultLives-1 || f.HUD.Score != 10 {
		t.Fatalf("HUD = %+v, expected one life lost and 10 points", f.HUD)
	}
	if len(f.Particles) == 0 {
		t.Fatal("expected particles after collision effects")
	}

	final := s.Stop()
	if final.Score != 10 {
		t.Errorf("Stop() = %+v, expected final score 10", final)
	}

	s.Start()
	f = s.Frame()
	if f.HUD != (HUD{Score: 0, Lives: DefaultLives}) {
		t.Errorf("HUD = %+v after restart, expected reset", f.HUD)
	}
	if len(f.Particles) != 0 {
		t.Errorf("particles = %d after restart, expected 0", len(f.Particles))
	}
	if s.Counters().Snapshot() != f.HUD {
		t.Error("Counters() should be the pair the running world writes")
	}
}

func TestToggle(t *testing.T) {
	s := newTestSession(player(10, 10, 30, 30))
	if got := s.Toggle(); got != StateRunning {
		t.Errorf("Toggle() = %v, expected running", got)
	}
	s.Start() // no-op while running
	_ = s.Step(none())
	if s.Frame().Number != 1 {
		t.Error("Start() while running should not rebuild the world")
	}
	if got := s.Toggle(); got != StateStopped {
		t.Errorf("Toggle() = %v, expected stopped", got)
	}
	s.Stop() // no-op while stopped
	if s.State() != StateStopped {
		t.Error("Stop() while stopped should stay stopped")
	}
}
