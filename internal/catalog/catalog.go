// Package catalog holds the built-in game templates: for each archetype its
// simulation configuration, starting entities and editor palette. Templates
// are YAML documents; the embedded set can be overridden by a file in the
// user or local config directory.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-gamebuilder/internal/config"
	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var embeddedTemplates []byte

// FileName is the override file looked up in the config directories.
const FileName = "templates.yaml"

var (
	// ErrUnknownTemplate is returned when no template has the requested id.
	ErrUnknownTemplate = errors.New("catalog: unknown template")
	// ErrUnknownKind is returned when a palette has no entry for a kind.
	ErrUnknownKind = errors.New("catalog: unknown palette kind")
)

// Document is the YAML layout of a templates file.
type Document struct {
	Templates []Template `yaml:"templates"`
}

// Template is one archetype.
type Template struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Config      TemplateConfig `yaml:"config"`
	Entities    []EntitySpec   `yaml:"entities"`
	Palette     []EntitySpec   `yaml:"palette"`
}

// TemplateConfig is the YAML form of sim.Config.
type TemplateConfig struct {
	Gravity       *float64          `yaml:"gravity"` // absent = sim default, 0 is kept
	CanvasWidth   float64           `yaml:"canvas_width"`
	CanvasHeight  float64           `yaml:"canvas_height"`
	ControlScheme sim.ControlScheme `yaml:"control_scheme"`
	ScrollSpeed   float64           `yaml:"scroll_speed,omitempty"`
	GridSize      float64           `yaml:"grid_size,omitempty"`
	Seed          int64             `yaml:"seed,omitempty"`
}

// EntitySpec describes an entity or a palette entry. Zero numeric fields
// take the creation defaults when built.
type EntitySpec struct {
	Kind   string     `yaml:"kind"`
	Label  string     `yaml:"label,omitempty"`
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  core.Color `yaml:"color"`

	Controllable bool    `yaml:"controllable,omitempty"`
	Physics      bool    `yaml:"physics,omitempty"`
	Solid        bool    `yaml:"solid,omitempty"`
	Deadly       bool    `yaml:"deadly,omitempty"`
	Collectible  bool    `yaml:"collectible,omitempty"`
	Breakable    bool    `yaml:"breakable,omitempty"`
	Bounce       float64 `yaml:"bounce,omitempty"`
	AI           string  `yaml:"ai,omitempty"`
	Points       int     `yaml:"points,omitempty"`
	Speed        float64 `yaml:"speed,omitempty"`
	JumpPower    float64 `yaml:"jump_power,omitempty"`
	Health       int     `yaml:"health,omitempty"`
	Launched     *bool   `yaml:"launched,omitempty"` // present = breakout ball
	GemType      string  `yaml:"gem_type,omitempty"`
	Road         bool    `yaml:"road,omitempty"`
}

// Meta keys set on built entities.
const (
	MetaLabel   = "label"
	MetaGemType = "gem_type"
	MetaRoad    = "road"
)

// Placement of a palette entity added in the editor.
var (
	PalettePosition = core.Vec2{X: 200, Y: 200}
	PaletteSize     = core.Vec2{X: 40, Y: 40}
)

// Catalog is an ordered, validated set of templates.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// Parse decodes and validates a templates document.
func Parse(data []byte) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: yaml unmarshal: %w", err)
	}
	return New(doc.Templates)
}

// New validates templates and builds a catalog in the given order.
func New(templates []Template) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(templates))}
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate template %q", t.ID)
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	if len(c.templates) == 0 {
		return nil, errors.New("catalog: no templates")
	}
	return c, nil
}

// Load reads templates using the config search order:
// customPath -> ~/.gamebuilder/templates.yaml -> ./configs/templates.yaml -> embedded.
func Load(customPath string) (*Catalog, config.Source, error) {
	var doc Document
	src, err := config.LoadYAML(FileName, customPath, embeddedTemplates, &doc)
	if err != nil {
		return nil, "", err
	}
	c, err := New(doc.Templates)
	if err != nil {
		return nil, "", fmt.Errorf("%w (from %s)", err, src)
	}
	return c, src, nil
}

// Default returns the embedded catalog. It panics if the embedded file is
// broken, which only a bad build can cause.
func Default() *Catalog {
	c, err := Parse(embeddedTemplates)
	if err != nil {
		panic(err)
	}
	return c
}

// Templates returns the templates in file order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (Template, error) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("%w %q", ErrUnknownTemplate, id)
	}
	return c.templates[i], nil
}

// Validate checks the fields the builder cannot default.
func (t Template) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("catalog: template without id")
	}
	if t.Config.CanvasWidth <= 0 || t.Config.CanvasHeight <= 0 {
		return fmt.Errorf("catalog: template %q: canvas must be positive", t.ID)
	}
	specs := append(append([]EntitySpec{}, t.Entities...), t.Palette...)
	for i, s := range specs {
		if s.Kind == "" {
			return fmt.Errorf("catalog: template %q: entity %d without kind", t.ID, i)
		}
		if !s.Color.Valid() {
			return fmt.Errorf("catalog: template %q: %s: bad color %q", t.ID, s.Kind, s.Color)
		}
		if _, err := sim.ParseAIVariant(s.AI); err != nil {
			return fmt.Errorf("catalog: template %q: %s: %w", t.ID, s.Kind, err)
		}
	}
	return nil
}

// SimConfig converts the template configuration.
func (t Template) SimConfig() sim.Config {
	cfg := sim.Config{
		CanvasWidth:  t.Config.CanvasWidth,
		CanvasHeight: t.Config.CanvasHeight,
		Scheme:       t.Config.ControlScheme,
		ScrollSpeed:  t.Config.ScrollSpeed,
		GridSize:     t.Config.GridSize,
		Seed:         t.Config.Seed,
	}
	if t.Config.Gravity != nil {
		cfg.Gravity = sim.Float(*t.Config.Gravity)
	}
	return cfg
}

// Build returns the template's starting entities. IDs are left zero; the
// session assigns them.
func (t Template) Build() []sim.Entity {
	out := make([]sim.Entity, 0, len(t.Entities))
	for _, s := range t.Entities {
		out = append(out, s.Entity())
	}
	return out
}

// PaletteEntity builds the palette entry for kind at the editor placement.
func (t Template) PaletteEntity(kind string) (sim.Entity, error) {
	for _, s := range t.Palette {
		if s.Kind != kind {
			continue
		}
		s.X, s.Y = PalettePosition.X, PalettePosition.Y
		s.Width, s.Height = PaletteSize.X, PaletteSize.Y
		return s.Entity(), nil
	}
	return sim.Entity{}, fmt.Errorf("%w %q in template %q", ErrUnknownKind, kind, t.ID)
}

// Entity builds a simulation entity, applying the creation defaults:
// zero velocity, nothing collected, patrol anchored at the spawn x.
func (s EntitySpec) Entity() sim.Entity {
	e := sim.Entity{
		Kind:   s.Kind,
		Pos:    core.Vec2{X: s.X, Y: s.Y},
		Size:   core.Vec2{X: s.Width, Y: s.Height},
		Color:  s.Color,
		Solid:  s.Solid,
		Deadly: s.Deadly,
	}

	meta := make(map[string]string)
	if s.Label != "" {
		meta[MetaLabel] = s.Label
	}
	if s.GemType != "" {
		meta[MetaGemType] = s.GemType
	}
	if s.Road {
		meta[MetaRoad] = "true"
	}
	if len(meta) > 0 {
		e.Meta = meta
	}

	variant, _ := sim.ParseAIVariant(s.AI)

	if s.Controllable {
		jump := s.JumpPower
		if jump == 0 {
			jump = sim.DefaultJumpPower
		}
		e.Control = &sim.Control{Speed: s.speed(variant), JumpPower: jump}
	}
	if s.Physics {
		e.Physics = &sim.PhysicsBody{Bounce: s.Bounce}
	}
	if variant != sim.AINone {
		e.AI = &sim.AIBehavior{
			Variant:        variant,
			PatrolStart:    s.X,
			PatrolDistance: sim.DefaultPatrolDistance,
			Speed:          s.speed(variant),
		}
	}
	if s.Collectible {
		e.Collectible = &sim.Collectible{Points: s.points()}
	}
	if s.Breakable {
		e.Breakable = &sim.Breakable{Points: s.points()}
	}
	if s.Launched != nil {
		e.Ball = &sim.Ball{Launched: *s.Launched}
	}
	if s.Health > 0 {
		e.Fighter = &sim.Fighter{Health: s.Health}
	}
	return e
}

func (s EntitySpec) speed(v sim.AIVariant) float64 {
	switch {
	case s.Speed != 0:
		return s.Speed
	case v == sim.AIPatrol:
		return sim.DefaultPatrolSpeed
	default:
		return sim.DefaultMoveSpeed
	}
}

func (s EntitySpec) points() int {
	if s.Points > 0 {
		return s.Points
	}
	return sim.DefaultPoints
}
