package sim

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

// World is the live simulation of one run: it owns the entity and particle
// collections outright and mutates them only inside Step.
type World struct {
	cfg       Config
	gravity   float64
	entities  []Entity
	particles *ParticleSystem
	counters  *Counters
	rng       *rand.Rand
	logger    *log.Logger
	frame     uint64
}

// NewWorld builds a world from a deep copy of entities. Counters are shared
// with the caller so a sampler can read them; a nil counters gets a fresh
// pair. A nil logger discards output.
func NewWorld(cfg Config, entities []Entity, counters *Counters, logger *log.Logger) *World {
	cfg = cfg.withDefaults()
	if counters == nil {
		counters = NewCounters()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &World{
		cfg:       cfg,
		gravity:   cfg.EffectiveGravity(),
		entities:  cloneEntities(entities),
		particles: NewParticleSystem(rng),
		counters:  counters,
		rng:       rng,
		logger:    logger,
	}
}

// Config returns the world's configuration with defaults applied.
func (w *World) Config() Config {
	return w.cfg
}

// Counters returns the score/lives pair the world writes.
func (w *World) Counters() *Counters {
	return w.counters
}

// Frame returns the number of completed steps.
func (w *World) Frame() uint64 {
	return w.frame
}

// Player returns the first controllable entity, or nil.
func (w *World) Player() *Entity {
	for i := range w.entities {
		if w.entities[i].Control != nil {
			return &w.entities[i]
		}
	}
	return nil
}

// Entity returns a copy of the entity with the given id.
func (w *World) Entity(id EntityID) (Entity, bool) {
	for i := range w.entities {
		if w.entities[i].ID == id {
			return w.entities[i].Clone(), true
		}
	}
	return Entity{}, false
}

// Entities returns a deep copy of the entity collection.
func (w *World) Entities() []Entity {
	return cloneEntities(w.entities)
}

// Particles returns a copy of the live particles.
func (w *World) Particles() []Particle {
	return w.particles.Snapshot()
}

// Step runs one frame pass: every entity once through the rules in fixed
// order, then one particle step.
func (w *World) Step(in core.InputState) {
	player := w.Player()
	for i := range w.entities {
		e := &w.entities[i]
		e.exempt = 0
		if !e.Active() {
			// Collected runner pickups keep scrolling so the recycle can
			// re-arm them.
			if w.cfg.Scheme == SchemeRunner && e.Collectible != nil && e.Breakable == nil {
				w.scroll(e)
			}
			continue
		}
		w.stepEntity(e, player, in)
	}
	w.particles.Step()
	w.frame++
}

func (w *World) stepEntity(e, player *Entity, in core.InputState) {
	if e.Control != nil {
		if h := inputHandlers[w.cfg.Scheme]; h != nil {
			h.HandleInput(w, e, in)
		}
	}

	if w.isBreakoutBall(e) {
		w.updateBall(e, player, in)
	} else {
		w.integrate(e)
	}

	w.runAI(phaseMotion, e, player)
	w.scroll(e)
	w.collect(e, player)
	w.hurt(e, player)
	w.runAI(phaseLate, e, player)
	w.clamp(e)
}

// clamp keeps e inside the canvas on every axis not exempted this frame.
func (w *World) clamp(e *Entity) {
	if e.exempt&axisX == 0 {
		e.Pos.X = core.ClampF(e.Pos.X, 0, w.cfg.CanvasWidth-e.Size.X)
	}
	if e.exempt&axisY == 0 {
		e.Pos.Y = core.ClampF(e.Pos.Y, 0, w.cfg.CanvasHeight-e.Size.Y)
	}
}
