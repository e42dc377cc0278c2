package sim

import "math"

// integrate runs one frame of the physics integrator for e. The bounce and
// plain branches are mutually exclusive.
func (w *World) integrate(e *Entity) {
	if e.Physics == nil {
		return
	}
	if e.Physics.Bounce > 0 {
		w.integrateBounce(e)
		return
	}
	w.integratePlain(e)
}

func (w *World) applyGravity(e *Entity) {
	e.Vel.Y += w.gravity
	e.Pos.Y += e.Vel.Y
	e.Pos.X += e.Vel.X
}

func (w *World) integrateBounce(e *Entity) {
	bounce := e.Physics.Bounce
	w.applyGravity(e)

	floor := w.cfg.CanvasHeight - e.Size.Y
	if e.Pos.Y >= floor {
		e.Pos.Y = floor
		e.Vel.Y = -e.Vel.Y * bounce
		if math.Abs(e.Vel.Y) < restThreshold {
			e.Vel.Y = 0
		}
	}

	for i := range w.entities {
		platform := &w.entities[i]
		if !w.isPlatformFor(e, platform) || !e.Overlaps(platform) {
			continue
		}
		if e.Vel.Y > 0 {
			e.Pos.Y = platform.Pos.Y - e.Size.Y
			e.Vel.Y = -e.Vel.Y * bounce
		}
	}
}

func (w *World) integratePlain(e *Entity) {
	w.applyGravity(e)

	floor := w.cfg.CanvasHeight - e.Size.Y
	if e.Pos.Y >= floor {
		e.Pos.Y = floor
		e.Vel.Y = 0
	}

	for i := range w.entities {
		platform := &w.entities[i]
		if !w.isPlatformFor(e, platform) || !e.Overlaps(platform) {
			continue
		}
		// Only land when the bottom edge was at or above the platform top
		// (within tolerance) before this frame's motion.
		prevBottom := e.Pos.Y + e.Size.Y - e.Vel.Y
		if e.Vel.Y > 0 && prevBottom <= platform.Pos.Y+platformTolerance {
			e.Pos.Y = platform.Pos.Y - e.Size.Y
			e.Vel.Y = 0
		}
	}
}

// isPlatformFor reports whether p is a solid e can collide with. Self is
// excluded by id, never by index.
func (w *World) isPlatformFor(e, p *Entity) bool {
	return p.Solid && p.ID != e.ID && p.Active()
}
