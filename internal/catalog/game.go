package catalog

import (
	"github.com/vovakirdan/tui-gamebuilder/internal/registry"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
)

// Game adapts a Template to registry.Game.
type Game struct {
	t Template
}

// NewGame wraps a template.
func NewGame(t Template) *Game {
	return &Game{t: t}
}

// Template returns the wrapped template.
func (g *Game) Template() Template { return g.t }

// ID implements registry.Game.
func (g *Game) ID() string { return g.t.ID }

// Title implements registry.Game.
func (g *Game) Title() string { return g.t.Title }

// Description implements registry.Game.
func (g *Game) Description() string { return g.t.Description }

// Scheme implements registry.Game.
func (g *Game) Scheme() sim.ControlScheme { return g.t.Config.ControlScheme }

// NewSession implements registry.Game.
func (g *Game) NewSession(seed int64, opts ...sim.Option) *sim.Session {
	cfg := g.t.SimConfig()
	if seed != 0 {
		cfg.Seed = seed
	}
	return sim.NewSession(cfg, g.t.Build(), opts...)
}

// Palette implements registry.Game.
func (g *Game) Palette() []registry.PaletteEntry {
	out := make([]registry.PaletteEntry, 0, len(g.t.Palette))
	for _, s := range g.t.Palette {
		label := s.Label
		if label == "" {
			label = s.Kind
		}
		out = append(out, registry.PaletteEntry{Kind: s.Kind, Label: label, Color: s.Color})
	}
	return out
}

// NewEntity implements registry.Game.
func (g *Game) NewEntity(kind string) (sim.Entity, error) {
	return g.t.PaletteEntity(kind)
}

// Register adds every template of c to the registry.
func Register(c *Catalog) {
	for _, t := range c.Templates() {
		t := t
		registry.Register(t.ID, func() registry.Game {
			return NewGame(t)
		})
	}
}

func init() {
	c, _, err := Load("")
	if err != nil {
		c = Default()
	}
	Register(c)
}
