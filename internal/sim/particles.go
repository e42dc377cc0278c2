package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

// Particle constants.
const (
	DefaultBurst    = 8
	particleLife    = 30
	particleSpread  = 6.0
	particleLift    = -2.0
	particleGravity = 0.3
)

// Particle is a short-lived cosmetic point. It never collides.
type Particle struct {
	ID    int64
	Pos   core.Vec2
	Vel   core.Vec2
	Life  int
	Color core.Color
}

// ParticleSystem owns the active particles of one running session.
type ParticleSystem struct {
	particles []Particle
	nextID    int64
	rng       *rand.Rand
}

// NewParticleSystem creates an empty system drawing from rng.
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{rng: rng}
}

// Spawn creates count particles at origin with randomized velocities biased
// upward. A non-positive count spawns DefaultBurst.
func (ps *ParticleSystem) Spawn(origin core.Vec2, c core.Color, count int) {
	if count <= 0 {
		count = DefaultBurst
	}
	for i := 0; i < count; i++ {
		ps.nextID++
		ps.particles = append(ps.particles, Particle{
			ID:  ps.nextID,
			Pos: origin,
			Vel: core.Vec2{
				X: (ps.rng.Float64() - 0.5) * particleSpread,
				Y: (ps.rng.Float64()-0.5)*particleSpread + particleLift,
			},
			Life:  particleLife,
			Color: c,
		})
	}
}

// Step advances every particle one frame and drops the expired ones.
func (ps *ParticleSystem) Step() {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y += particleGravity
		p.Life--
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	clear(ps.particles[len(alive):])
	ps.particles = alive
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Snapshot returns a copy of the live particles.
func (ps *ParticleSystem) Snapshot() []Particle {
	out := make([]Particle, len(ps.particles))
	copy(out, ps.particles)
	return out
}

// Reset removes every particle.
func (ps *ParticleSystem) Reset() {
	ps.particles = ps.particles[:0]
}
