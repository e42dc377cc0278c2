package sim

import (
	"fmt"
	"math"
	"strings"
)

// AIVariant selects an autonomous behavior.
type AIVariant int

const (
	AINone AIVariant = iota
	AIPatrol
	AIChase
	AISine
	AICar
	AIFighter
)

var aiNames = map[AIVariant]string{
	AINone:    "",
	AIPatrol:  "patrol",
	AIChase:   "chase",
	AISine:    "sine",
	AICar:     "car",
	AIFighter: "fighter",
}

// String returns the variant's catalog tag.
func (v AIVariant) String() string {
	return aiNames[v]
}

// ParseAIVariant maps a catalog tag to a variant. The empty tag is AINone.
func ParseAIVariant(tag string) (AIVariant, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for v, n := range aiNames {
		if n == tag {
			return v, nil
		}
	}
	return AINone, fmt.Errorf("sim: unknown ai variant %q", tag)
}

const (
	chaseRange    = 200.0
	chaseStep     = 2.0
	sineAdvance   = 2.0
	sineFrequency = 0.05
	sineAmplitude = 3.0
	carAdvance    = 4.0
	carRespawnY   = -80.0
	fighterGap    = 60.0
	fighterStep   = 2.0
)

type aiPhase int

const (
	// phaseMotion runs after physics and before scrolling.
	phaseMotion aiPhase = iota
	// phaseLate runs after collision effects and before the bounds clamp.
	phaseLate
)

// Behavior is one AI variant's per-frame rule.
type Behavior interface {
	Update(w *World, e *Entity, player *Entity)
}

type behavior struct {
	phase aiPhase
	fn    func(w *World, e *Entity, player *Entity)
}

func (b behavior) Update(w *World, e *Entity, player *Entity) {
	b.fn(w, e, player)
}

var behaviors = map[AIVariant]behavior{
	AISine:    {phaseMotion, sineUpdate},
	AICar:     {phaseMotion, carUpdate},
	AIFighter: {phaseMotion, fighterUpdate},
	AIPatrol:  {phaseLate, patrolUpdate},
	AIChase:   {phaseLate, chaseUpdate},
}

// BehaviorFor returns the rule for a variant, or nil for AINone.
func BehaviorFor(v AIVariant) Behavior {
	b, ok := behaviors[v]
	if !ok {
		return nil
	}
	return b
}

// runAI evaluates e's behavior if it belongs to the given phase.
func (w *World) runAI(phase aiPhase, e, player *Entity) {
	if e.AI == nil {
		return
	}
	b, ok := behaviors[e.AI.Variant]
	if !ok || b.phase != phase {
		return
	}
	b.fn(w, e, player)
}

func patrolUpdate(_ *World, e, _ *Entity) {
	ai := e.AI
	if math.Abs(e.Pos.X-ai.PatrolStart) > ai.PatrolDistance {
		ai.Speed = -ai.Speed
	}
	e.Pos.X += ai.Speed
}

func chaseUpdate(_ *World, e, player *Entity) {
	if player == nil {
		return
	}
	d := player.Pos.Sub(e.Pos)
	dist := d.Len()
	if dist <= 0 || dist > chaseRange {
		return
	}
	e.Pos.X += d.X / dist * chaseStep
	e.Pos.Y += d.Y / dist * chaseStep
}

func sineUpdate(_ *World, e, _ *Entity) {
	e.Pos.X += sineAdvance
	e.Pos.Y += math.Sin(e.Pos.X*sineFrequency) * sineAmplitude
}

func carUpdate(w *World, e, _ *Entity) {
	e.Pos.Y += carAdvance
	e.exempt |= axisY
	if e.Pos.Y <= w.cfg.CanvasHeight {
		return
	}
	e.Pos.Y = carRespawnY
	e.Pos.X = w.cfg.CarLanes[w.rng.Intn(len(w.cfg.CarLanes))]
	e.exempt |= axisBoth
	w.logger.Debug("car recycled", "id", e.ID, "x", e.Pos.X)
}

func fighterUpdate(_ *World, e, player *Entity) {
	if player == nil {
		return
	}
	gap := player.Pos.X - e.Pos.X
	if math.Abs(gap) <= fighterGap {
		return
	}
	if gap > 0 {
		e.Pos.X += fighterStep
	} else {
		e.Pos.X -= fighterStep
	}
}
