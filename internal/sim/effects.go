package sim

import (
	"math"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

// Breakout ball constants.
const (
	ballPinGap       = 5.0
	ballLaunchVX     = 3.0
	ballLaunchVY     = -8.0
	ballAngleControl = 10.0
)

func pointsOrDefault(p int) int {
	if p == 0 {
		return DefaultPoints
	}
	return p
}

// isBreakoutBall reports whether the ball rule owns e this session.
func (w *World) isBreakoutBall(e *Entity) bool {
	return e.Ball != nil && w.cfg.Scheme == SchemeBreakout
}

// updateBall runs the breakout ball rule. The paddle is the player.
func (w *World) updateBall(e, paddle *Entity, in core.InputState) {
	if !e.Ball.Launched {
		if paddle == nil {
			return
		}
		w.pinBall(e, paddle)
		if in.Held(core.SignalJump, core.KeySpace) {
			e.Ball.Launched = true
			e.Vel = core.Vec2{X: ballLaunchVX, Y: ballLaunchVY}
			w.logger.Debug("ball launched", "id", e.ID)
		}
		return
	}

	e.exempt |= axisY
	e.Pos = e.Pos.Add(e.Vel)

	if paddle != nil && e.Vel.Y > 0 && e.Overlaps(paddle) {
		e.Vel.Y = -math.Abs(e.Vel.Y)
		hit := (e.Pos.X - paddle.Pos.X) / paddle.Size.X
		e.Vel.X = (hit - 0.5) * ballAngleControl
	}

	for i := range w.entities {
		brick := &w.entities[i]
		if brick.Breakable == nil || brick.Breakable.Broken || brick.ID == e.ID || !e.Overlaps(brick) {
			continue
		}
		e.Vel.Y = -e.Vel.Y
		brick.Breakable.Broken = true
		w.particles.Spawn(brick.Center(), brick.Color, DefaultBurst)
		w.counters.AddScore(pointsOrDefault(brick.Breakable.Points))
	}

	if e.Pos.X <= 0 || e.Pos.X >= w.cfg.CanvasWidth-e.Size.X {
		e.Vel.X = -e.Vel.X
	}
	if e.Pos.Y <= 0 {
		e.Vel.Y = -e.Vel.Y
	}

	if e.Pos.Y > w.cfg.CanvasHeight {
		w.counters.LoseLife()
		e.Ball.Launched = false
		e.Vel = core.Vec2{}
		if paddle != nil {
			w.pinBall(e, paddle)
		}
		w.logger.Debug("ball lost", "id", e.ID, "lives", w.counters.Snapshot().Lives)
	}
}

func (w *World) pinBall(e, paddle *Entity) {
	e.Pos.X = paddle.Pos.X + paddle.Size.X/2 - e.Size.X/2
	e.Pos.Y = paddle.Pos.Y - e.Size.Y - ballPinGap
}

// collect resolves a player pickup of e.
func (w *World) collect(e, player *Entity) {
	if player == nil || e.Collectible == nil || e.Collectible.Collected || e.ID == player.ID {
		return
	}
	if !player.Overlaps(e) {
		return
	}
	e.Collectible.Collected = true
	w.particles.Spawn(e.Center(), e.Color, DefaultBurst)
	w.counters.AddScore(pointsOrDefault(e.Collectible.Points))
}

// hurt resolves a player contact with deadly e: a burst at the player,
// one life lost, and the player back at the respawn point at rest.
func (w *World) hurt(e, player *Entity) {
	if player == nil || !e.Deadly || e.ID == player.ID {
		return
	}
	if !player.Overlaps(e) {
		return
	}
	w.particles.Spawn(player.Center(), core.ColorAlert, deadlyBurst)
	w.counters.LoseLife()
	player.Pos = w.cfg.RespawnPoint
	player.Vel = core.Vec2{}
	if player.Control != nil {
		player.Control.Step = GridStep{}
	}
	w.logger.Debug("player hit", "by", e.ID, "lives", w.counters.Snapshot().Lives)
}
