package sim

const (
	runnerDeadlySpread  = 200.0
	runnerCollectSpread = 300.0
)

// scroll applies the world-scrolling rule of the session's scheme to e.
// Only runner and shooter scroll, and only when a scroll speed is set.
func (w *World) scroll(e *Entity) {
	speed := w.cfg.ScrollSpeed
	if speed == 0 {
		return
	}
	switch w.cfg.Scheme {
	case SchemeRunner:
		w.scrollRunner(e, speed)
	case SchemeShooter:
		w.scrollShooter(e, speed)
	}
}

// scrollsWithRunner reports whether e is moved by the runner scroll.
func scrollsWithRunner(e *Entity) bool {
	return e.Control == nil && !e.Solid
}

func (w *World) scrollRunner(e *Entity, speed float64) {
	if !scrollsWithRunner(e) {
		return
	}
	e.Pos.X -= speed
	e.exempt |= axisX
	if e.Pos.X >= runnerRecycleX {
		return
	}

	switch {
	case e.Deadly:
		e.Pos.X = w.cfg.CanvasWidth + w.rng.Float64()*runnerDeadlySpread
	case e.Collectible != nil:
		e.Pos.X = w.cfg.CanvasWidth + w.rng.Float64()*runnerCollectSpread
		e.Collectible.Collected = false
	default:
		e.Pos.X = w.cfg.CanvasWidth + w.rng.Float64()*runnerDeadlySpread
	}
	e.exempt |= axisBoth
	w.logger.Debug("entity recycled", "id", e.ID, "kind", e.Kind, "x", e.Pos.X)
}

func (w *World) scrollShooter(e *Entity, speed float64) {
	if e.Control != nil {
		return
	}
	e.Pos.X += speed
	e.exempt |= axisX
	if e.Pos.X <= w.cfg.CanvasWidth {
		return
	}
	e.Pos.X = -e.Size.X
	e.Pos.Y = w.rng.Float64() * w.cfg.CanvasHeight
	e.exempt |= axisBoth
	w.logger.Debug("entity wrapped", "id", e.ID, "kind", e.Kind, "y", e.Pos.Y)
}
