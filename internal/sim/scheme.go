package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

// ControlScheme selects the rule set a session runs under.
type ControlScheme int

const (
	SchemeUnknown ControlScheme = iota
	SchemePlatformer
	SchemeFlappy
	SchemeTopDown
	SchemeSnake
	SchemeBreakout
	SchemeRunner
	SchemeShooter
	SchemeRacing
	SchemeFighting
	SchemePhysics
	SchemeMatch3
)

var schemeNames = map[ControlScheme]string{
	SchemeUnknown:    "unknown",
	SchemePlatformer: "platformer",
	SchemeFlappy:     "flappy",
	SchemeTopDown:    "topdown",
	SchemeSnake:      "snake",
	SchemeBreakout:   "breakout",
	SchemeRunner:     "runner",
	SchemeShooter:    "shooter",
	SchemeRacing:     "racing",
	SchemeFighting:   "fighting",
	SchemePhysics:    "physics",
	SchemeMatch3:     "match3",
}

// String returns the scheme's catalog name.
func (s ControlScheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseScheme maps a catalog name to a scheme. Unrecognized names yield
// SchemeUnknown and an error; callers may still run the session with it.
func ParseScheme(name string) (ControlScheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range schemeNames {
		if s != SchemeUnknown && n == name {
			return s, nil
		}
	}
	return SchemeUnknown, fmt.Errorf("sim: unknown control scheme %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s ControlScheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// SchemeUnknown without error so a template with a typo stays loadable.
func (s *ControlScheme) UnmarshalText(text []byte) error {
	parsed, _ := ParseScheme(string(text))
	*s = parsed
	return nil
}

// InputHandler applies one frame of player input to the controllable entity.
type InputHandler interface {
	HandleInput(w *World, e *Entity, in core.InputState)
}

// InputHandlerFunc adapts a function to InputHandler.
type InputHandlerFunc func(w *World, e *Entity, in core.InputState)

// HandleInput calls f.
func (f InputHandlerFunc) HandleInput(w *World, e *Entity, in core.InputState) {
	f(w, e, in)
}

// inputHandlers is the per-scheme strategy table. Schemes without an entry
// (physics, match3, unknown) do no input handling.
var inputHandlers = map[ControlScheme]InputHandler{
	SchemePlatformer: InputHandlerFunc(handlePlatformer),
	SchemeFlappy:     InputHandlerFunc(handleFlappy),
	SchemeTopDown:    InputHandlerFunc(handleTopDown),
	SchemeSnake:      InputHandlerFunc(handleSnake),
	SchemeBreakout:   InputHandlerFunc(handleBreakout),
	SchemeRunner:     InputHandlerFunc(handleRunner),
	SchemeShooter:    InputHandlerFunc(handleShooter),
	SchemeRacing:     InputHandlerFunc(handleRacing),
	SchemeFighting:   InputHandlerFunc(handleFighting),
}

// HandlerFor returns the input strategy for a scheme, or nil.
func HandlerFor(s ControlScheme) InputHandler {
	return inputHandlers[s]
}

func moveSpeed(c *Control) float64 {
	if c.Speed == 0 {
		return DefaultMoveSpeed
	}
	return c.Speed
}

func jumpPower(c *Control) float64 {
	if c.JumpPower == 0 {
		return DefaultJumpPower
	}
	return c.JumpPower
}

// grounded reports the "grounded or apex" state that permits a jump.
func grounded(e *Entity) bool {
	return math.Abs(e.Vel.Y) < groundedThreshold
}

// steerVelocity sets horizontal velocity while a direction is held and
// decays it toward rest otherwise.
func steerVelocity(e *Entity, left, right bool) {
	speed := moveSpeed(e.Control)
	switch {
	case left:
		e.Vel.X = -speed
	case right:
		e.Vel.X = speed
	default:
		e.Vel.X *= velocityDecay
	}
}

func handlePlatformer(_ *World, e *Entity, in core.InputState) {
	steerVelocity(e,
		in.Held(core.SignalLeft, core.KeyArrowLeft, core.KeyA),
		in.Held(core.SignalRight, core.KeyArrowRight, core.KeyD),
	)
	if in.Held(core.SignalJump, core.KeyArrowUp, core.KeySpace) && grounded(e) {
		e.Vel.Y = jumpPower(e.Control)
	}
}

func handleFighting(_ *World, e *Entity, in core.InputState) {
	steerVelocity(e,
		in.Held(core.SignalLeft, core.KeyArrowLeft, core.KeyA),
		in.Held(core.SignalRight, core.KeyArrowRight, core.KeyD),
	)
	if in.Held(core.SignalJump, core.KeyArrowUp, core.KeyW) && grounded(e) {
		e.Vel.Y = jumpPower(e.Control)
	}
}

func handleFlappy(_ *World, e *Entity, in core.InputState) {
	pressed := in.Held(core.SignalJump, core.KeySpace)
	if !pressed {
		e.Control.jumpLatched = false
		return
	}
	if e.Control.jumpLatched {
		return
	}
	e.Vel.Y = flapVelocity
	e.Control.jumpLatched = true
}

func handleTopDown(w *World, e *Entity, in core.InputState) {
	speed := moveSpeed(e.Control)
	next := e.Pos
	if in.Held(core.SignalUp, core.KeyArrowUp, core.KeyW) {
		next.Y -= speed
	}
	if in.Held(core.SignalDown, core.KeyArrowDown, core.KeyS) {
		next.Y += speed
	}
	if in.Held(core.SignalLeft, core.KeyArrowLeft, core.KeyA) {
		next.X -= speed
	}
	if in.Held(core.SignalRight, core.KeyArrowRight, core.KeyD) {
		next.X += speed
	}
	if next == e.Pos {
		return
	}

	proposed := core.NewRect(next.X, next.Y, e.Size.X, e.Size.Y)
	for i := range w.entities {
		other := &w.entities[i]
		if other.ID == e.ID || !other.Solid || !other.Active() {
			continue
		}
		if proposed.Overlaps(other.Rect()) {
			return
		}
	}
	e.Pos = next
}

func handleSnake(w *World, e *Entity, in core.InputState) {
	step := &e.Control.Step
	grid := w.cfg.GridSize

	if !step.Moving {
		switch {
		case in.Held(core.SignalUp, core.KeyArrowUp):
			*step = GridStep{Moving: true, Direction: DirUp, Target: e.Pos.Y - grid}
		case in.Held(core.SignalDown, core.KeyArrowDown):
			*step = GridStep{Moving: true, Direction: DirDown, Target: e.Pos.Y + grid}
		case in.Held(core.SignalLeft, core.KeyArrowLeft):
			*step = GridStep{Moving: true, Direction: DirLeft, Target: e.Pos.X - grid}
		case in.Held(core.SignalRight, core.KeyArrowRight):
			*step = GridStep{Moving: true, Direction: DirRight, Target: e.Pos.X + grid}
		}
	}
	if !step.Moving {
		return
	}

	pos := &e.Pos.Y
	if step.horizontal() {
		pos = &e.Pos.X
	}
	if math.Abs(*pos-step.Target) < gridStepSpeed {
		*pos = step.Target
		*step = GridStep{}
		return
	}
	if *pos < step.Target {
		*pos += gridStepSpeed
	} else {
		*pos -= gridStepSpeed
	}
}

func handleBreakout(_ *World, e *Entity, in core.InputState) {
	speed := moveSpeed(e.Control)
	if in.Held(core.SignalLeft, core.KeyArrowLeft) {
		e.Pos.X -= speed
	}
	if in.Held(core.SignalRight, core.KeyArrowRight) {
		e.Pos.X += speed
	}
}

func handleRunner(_ *World, e *Entity, in core.InputState) {
	if in.Held(core.SignalJump, core.KeyArrowUp, core.KeySpace) && grounded(e) {
		e.Vel.Y = jumpPower(e.Control)
	}
}

func handleShooter(_ *World, e *Entity, in core.InputState) {
	speed := moveSpeed(e.Control)
	if in.Held(core.SignalUp, core.KeyArrowUp) {
		e.Pos.Y -= speed
	}
	if in.Held(core.SignalDown, core.KeyArrowDown) {
		e.Pos.Y += speed
	}
}

func handleRacing(_ *World, e *Entity, in core.InputState) {
	speed := moveSpeed(e.Control)
	if in.Held(core.SignalLeft, core.KeyArrowLeft) {
		e.Pos.X -= speed
	}
	if in.Held(core.SignalRight, core.KeyArrowRight) {
		e.Pos.X += speed
	}
	e.Pos.Y -= racingAdvance
}
