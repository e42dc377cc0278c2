package registry

import (
	"testing"

	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
)

type fakeGame struct{ id string }

func (g fakeGame) ID() string                { return g.id }
func (g fakeGame) Title() string             { return "Fake " + g.id }
func (g fakeGame) Description() string       { return "test game" }
func (g fakeGame) Scheme() sim.ControlScheme { return sim.SchemeTopDown }
func (g fakeGame) Palette() []PaletteEntry   { return nil }

func (g fakeGame) NewSession(seed int64, opts ...sim.Option) *sim.Session {
	return sim.NewSession(sim.Config{CanvasWidth: 100, CanvasHeight: 100, Seed: seed}, nil, opts...)
}

func (g fakeGame) NewEntity(kind string) (sim.Entity, error) {
	return sim.Entity{Kind: kind}, nil
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-zeta", func() Game { return fakeGame{id: "test-zeta"} })
	Register("test-alpha", func() Game { return fakeGame{id: "test-alpha"} })

	if !Exists("test-zeta") || Exists("test-missing") {
		t.Error("Exists() does not reflect registrations")
	}

	g, err := Create("test-alpha")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test-alpha" {
		t.Errorf("Create().ID() = %q, expected test-alpha", g.ID())
	}
	if _, err := Create("test-missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}

	// List keeps registration order, IDs sorts.
	var listed []string
	for _, info := range List() {
		if info.ID == "test-zeta" || info.ID == "test-alpha" {
			listed = append(listed, info.ID)
			if info.Title != "Fake "+info.ID {
				t.Errorf("List() title = %q", info.Title)
			}
		}
	}
	if len(listed) != 2 || listed[0] != "test-zeta" {
		t.Errorf("List() order = %v, expected [test-zeta test-alpha]", listed)
	}

	var ids []string
	for _, id := range IDs() {
		if id == "test-zeta" || id == "test-alpha" {
			ids = append(ids, id)
		}
	}
	if len(ids) != 2 || ids[0] != "test-alpha" {
		t.Errorf("IDs() = %v, expected sorted", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() Game { return fakeGame{id: "test-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate id should panic")
		}
	}()
	Register("test-dup", func() Game { return fakeGame{id: "test-dup"} })
}
