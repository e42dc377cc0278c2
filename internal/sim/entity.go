// Package sim implements the real-time simulation core of the game builder:
// a per-frame pass over a shared entity collection under a control-scheme
// rule set (input, physics, AI, scrolling, collision effects, particles).
//
// The package has no rendering or terminal dependencies. The presentation
// layer drives it through Session and reads Frame snapshots.
package sim

import (
	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

// EntityID uniquely identifies an entity for its whole lifetime.
// IDs are assigned by the Session and never reused.
type EntityID int64

// Entity is one simulated object: a base body (identity, geometry, velocity)
// plus optional capabilities. A nil capability means the entity does not
// have it; each rule only looks at the capability it owns.
type Entity struct {
	ID    EntityID
	Kind  string // descriptive role ("player", "brick"); never dispatched on
	Pos   core.Vec2
	Size  core.Vec2 // X = width, Y = height
	Vel   core.Vec2
	Color core.Color

	// Meta holds descriptive, render-only fields (label, gem type, road).
	Meta map[string]string

	Solid  bool
	Deadly bool

	Control     *Control
	Physics     *PhysicsBody
	AI          *AIBehavior
	Collectible *Collectible
	Breakable   *Breakable
	Ball        *Ball
	Fighter     *Fighter

	// exempt marks axes the bounds clamp must skip for the current frame.
	exempt axisMask
}

// Control marks the entity as player-controlled.
type Control struct {
	Speed     float64 // px per frame for direct or velocity movement
	JumpPower float64 // vertical velocity applied on jump (negative is up)

	Step GridStep // snake grid-stepped motion state

	jumpLatched bool // flappy edge trigger: set on press, cleared on release
}

// Direction is the locked direction of a grid step.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// GridStep tracks an in-progress move toward a target one grid cell away.
// Only one axis is ever targeted at a time.
type GridStep struct {
	Moving    bool
	Direction Direction
	Target    float64 // target coordinate on the axis implied by Direction
}

// horizontal reports whether the step targets the x axis.
func (g GridStep) horizontal() bool {
	return g.Direction == DirLeft || g.Direction == DirRight
}

// PhysicsBody makes the entity subject to gravity and floor/platform
// resolution. Bounce > 0 selects the elastic branch.
type PhysicsBody struct {
	Bounce float64
}

// AIBehavior selects an autonomous behavior variant.
type AIBehavior struct {
	Variant        AIVariant
	PatrolStart    float64
	PatrolDistance float64
	Speed          float64 // signed patrol speed; flips at the patrol bounds
}

// Collectible awards Points when the player overlaps it.
type Collectible struct {
	Points    int
	Collected bool
}

// Breakable is destroyed by the breakout ball, awarding Points.
type Breakable struct {
	Points int
	Broken bool
}

// Ball is the breakout ball: pinned to the paddle until launched.
type Ball struct {
	Launched bool
}

// Fighter carries fighting-archetype state. Health is declared but no rule
// reads or changes it.
type Fighter struct {
	Health int
}

type axisMask uint8

const (
	axisX axisMask = 1 << iota
	axisY
	axisBoth = axisX | axisY
)

// Rect returns the entity's bounding box.
func (e *Entity) Rect() core.Rect {
	return core.NewRect(e.Pos.X, e.Pos.Y, e.Size.X, e.Size.Y)
}

// Center returns the center of the entity's bounding box.
func (e *Entity) Center() core.Vec2 {
	return e.Rect().Center()
}

// Overlaps reports whether e and other intersect.
func (e *Entity) Overlaps(other *Entity) bool {
	return e.Rect().Overlaps(other.Rect())
}

// Active reports whether the entity still takes part in the simulation.
// Collected and broken entities are out for the rest of the run.
func (e *Entity) Active() bool {
	if e.Collectible != nil && e.Collectible.Collected {
		return false
	}
	if e.Breakable != nil && e.Breakable.Broken {
		return false
	}
	return true
}

// Visible reports whether the entity should be drawn.
func (e *Entity) Visible() bool {
	return e.Active()
}

// Clone returns a deep copy of the entity; capability structs are not shared.
func (e Entity) Clone() Entity {
	c := e
	c.exempt = 0
	if e.Meta != nil {
		c.Meta = make(map[string]string, len(e.Meta))
		for k, v := range e.Meta {
			c.Meta[k] = v
		}
	}
	if e.Control != nil {
		ctl := *e.Control
		c.Control = &ctl
	}
	if e.Physics != nil {
		p := *e.Physics
		c.Physics = &p
	}
	if e.AI != nil {
		ai := *e.AI
		c.AI = &ai
	}
	if e.Collectible != nil {
		col := *e.Collectible
		c.Collectible = &col
	}
	if e.Breakable != nil {
		b := *e.Breakable
		c.Breakable = &b
	}
	if e.Ball != nil {
		b := *e.Ball
		c.Ball = &b
	}
	if e.Fighter != nil {
		f := *e.Fighter
		c.Fighter = &f
	}
	return c
}

// cloneEntities deep-copies a collection.
func cloneEntities(src []Entity) []Entity {
	out := make([]Entity, len(src))
	for i := range src {
		out[i] = src[i].Clone()
	}
	return out
}
