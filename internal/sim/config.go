package sim

import (
	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

// Defaults applied when a template leaves a numeric field out.
const (
	DefaultGravity        = 0.5
	DefaultJumpPower      = -12.0
	DefaultMoveSpeed      = 5.0
	DefaultPatrolSpeed    = 2.0
	DefaultPatrolDistance = 100.0
	DefaultGridSize       = 30.0
	DefaultPoints         = 10
	DefaultLives          = 3
)

// Rule constants.
const (
	groundedThreshold = 0.1  // |vy| below this counts as grounded or apex
	velocityDecay     = 0.8  // horizontal approach-to-rest per frame
	flapVelocity      = -8.0 // flappy impulse
	gridStepSpeed     = 5.0  // snake interpolation px/frame
	racingAdvance     = 3.0  // racing forward progress px/frame
	restThreshold     = 0.5  // bounce velocity snapped to zero below this
	platformTolerance = 5.0  // plain-branch landing tolerance above platform top
	runnerRecycleX    = -100.0
	deadlyBurst       = 12
)

// DefaultRespawnPoint is where the player reappears after a deadly contact.
var DefaultRespawnPoint = core.Vec2{X: 50, Y: 50}

// DefaultCarLanes are the x positions a recycled car can respawn in.
var DefaultCarLanes = []float64{75, 175, 275}

// Config is the per-session simulation configuration. It is never mutated by
// the simulation.
type Config struct {
	// Gravity is optional; nil means DefaultGravity. An explicit zero is kept.
	Gravity      *float64
	CanvasWidth  float64
	CanvasHeight float64
	Scheme       ControlScheme
	ScrollSpeed  float64
	GridSize     float64

	// RespawnPoint for the player after a deadly contact. The zero value
	// selects DefaultRespawnPoint.
	RespawnPoint core.Vec2
	// CarLanes for the car AI; empty selects DefaultCarLanes.
	CarLanes []float64
	// Seed for the deterministic RNG used by recycling and particles.
	Seed int64
}

// Float returns a pointer to v, for optional Config fields.
func Float(v float64) *float64 {
	return &v
}

// EffectiveGravity returns the configured gravity or the default.
func (c Config) EffectiveGravity() float64 {
	if c.Gravity == nil {
		return DefaultGravity
	}
	return *c.Gravity
}

// withDefaults returns a copy with zero-valued optional fields filled in.
func (c Config) withDefaults() Config {
	if c.GridSize <= 0 {
		c.GridSize = DefaultGridSize
	}
	if c.RespawnPoint == (core.Vec2{}) {
		c.RespawnPoint = DefaultRespawnPoint
	}
	if len(c.CarLanes) == 0 {
		c.CarLanes = DefaultCarLanes
	}
	lanes := make([]float64, len(c.CarLanes))
	copy(lanes, c.CarLanes)
	c.CarLanes = lanes
	if c.Gravity != nil {
		c.Gravity = Float(*c.Gravity)
	}
	return c
}
