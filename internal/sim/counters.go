package sim

import "sync"

// HUD is a point-in-time copy of the score and lives counters.
type HUD struct {
	Score int `json:"score"`
	Lives int `json:"lives"`
}

// Counters is the lock-guarded score/lives pair. The frame pass writes it;
// presentation samplers read it through Snapshot at their own cadence.
type Counters struct {
	mu    sync.RWMutex
	score int
	lives int
}

// NewCounters returns counters at (0, DefaultLives).
func NewCounters() *Counters {
	return &Counters{lives: DefaultLives}
}

// Reset puts the counters back to (0, DefaultLives).
func (c *Counters) Reset() {
	c.mu.Lock()
	c.score = 0
	c.lives = DefaultLives
	c.mu.Unlock()
}

// AddScore increases the score. Score never decreases, so non-positive
// amounts are ignored.
func (c *Counters) AddScore(points int) {
	if points <= 0 {
		return
	}
	c.mu.Lock()
	c.score += points
	c.mu.Unlock()
}

// LoseLife decrements lives, floored at zero.
func (c *Counters) LoseLife() {
	c.mu.Lock()
	if c.lives > 0 {
		c.lives--
	}
	c.mu.Unlock()
}

// Snapshot returns both counters read under one lock.
func (c *Counters) Snapshot() HUD {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return HUD{Score: c.score, Lives: c.lives}
}
