package sim

import (
	"math"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func box(x, y, w, h float64) Entity {
	return Entity{Pos: core.Vec2{X: x, Y: y}, Size: core.Vec2{X: w, Y: h}}
}

func player(x, y, w, h float64) Entity {
	e := box(x, y, w, h)
	e.Kind = "player"
	e.Control = &Control{Speed: DefaultMoveSpeed, JumpPower: DefaultJumpPower}
	return e
}

// newTestWorld assigns sequential ids and builds a world.
func newTestWorld(cfg Config, entities ...Entity) *World {
	for i := range entities {
		entities[i].ID = EntityID(i + 1)
	}
	if cfg.CanvasWidth == 0 {
		cfg.CanvasWidth = 800
	}
	if cfg.CanvasHeight == 0 {
		cfg.CanvasHeight = 600
	}
	return NewWorld(cfg, entities, nil, nil)
}

// at returns the live entity at index i.
func (w *World) at(i int) *Entity {
	return &w.entities[i]
}

func held(sigs ...core.Signal) core.InputState {
	in := core.NewInputState()
	for _, s := range sigs {
		in.SetSignal(s, true)
	}
	return in
}

func keys(ks ...core.Key) core.InputState {
	in := core.NewInputState()
	for _, k := range ks {
		in.SetKey(k, true)
	}
	return in
}

func none() core.InputState {
	return core.NewInputState()
}
