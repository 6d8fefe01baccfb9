package physics

import (
	"math"

	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/terrain"
)

const (
	// Horizontal and vertical slack before a projectile counts as lost.
	boundsMargin = 50
	// Above this height nothing can be hit, the shell is still climbing.
	ceiling = -200
	// Steps an embedded launch point may be nudged upward.
	maxNudge = 20
	// A frame is recorded every frameEvery integration steps.
	frameEvery = 2

	bounceAxis     = 0.5
	bounceDiagonal = 0.4
)

// Result is the outcome of one projectile flight.
type Result struct {
	Frames    []core.Point    // rounded positions for animation
	Explosion *core.Explosion // nil when the shell left the map
}

// SimulateProjectile flies a single shell from start with initial velocity
// vel until it detonates, leaves the map, or hits the step cap.
//
// Each step checks, in order: fuse expiry, map bounds, impact on terrain,
// bounce off terrain for fused shells, and proximity to a living worm for
// impact shells. The final position is always the last frame.
func (p Params) SimulateProjectile(start, vel core.Point, w Weapon, wind float64, t *terrain.Terrain, worms []core.Worm) Result {
	x, y := start.X, start.Y
	vx, vy := vel.X, vel.Y
	fuse := w.Fuse
	width := float64(t.Width())
	water := float64(t.WaterLevel())

	for i := 0; i < maxNudge && t.IsSolid(x, y); i++ {
		y--
	}

	var res Result
	for step := 0; step < p.MaxSteps; step++ {
		if w.WindAffected {
			vx += wind * p.WindForce * p.DT
		}
		vy += p.Gravity * p.DT
		x += vx * p.DT
		y += vy * p.DT

		if step%frameEvery == 0 {
			res.Frames = append(res.Frames, core.Pt(x, y).Round())
		}

		if !w.Impact() {
			fuse -= p.DT
			if fuse <= 0 {
				res.Explosion = explosionAt(x, y, w)
				break
			}
		}

		if x < -boundsMargin || x > width+boundsMargin || y > water+boundsMargin {
			break
		}
		if y < ceiling {
			continue
		}

		if t.IsSolid(x, y) {
			if w.Impact() {
				res.Explosion = explosionAt(x, y, w)
				break
			}
			x, y, vx, vy = bounce(t, x, y, vx, vy, p.DT)
		}

		if w.Impact() {
			if hit, ok := p.wormAt(x, y, worms); ok {
				res.Explosion = explosionAt(hit.X, hit.Y, w)
				break
			}
		}
	}

	last := core.Pt(x, y).Round()
	if n := len(res.Frames); n == 0 || res.Frames[n-1] != last {
		res.Frames = append(res.Frames, last)
	}
	return res
}

// bounce reflects a fused shell off terrain and rolls it back to the
// previous position along the axis it penetrated.
func bounce(t *terrain.Terrain, x, y, vx, vy, dt float64) (float64, float64, float64, float64) {
	px := x - vx*dt
	py := y - vy*dt

	switch {
	case t.IsSolid(x, py) && !t.IsSolid(px, y):
		return px, y, -vx * bounceAxis, vy
	case !t.IsSolid(x, py) && t.IsSolid(px, y):
		return x, py, vx, -vy * bounceAxis
	default:
		return px, py, -vx * bounceDiagonal, -vy * bounceDiagonal
	}
}

func (p Params) wormAt(x, y float64, worms []core.Worm) (core.Worm, bool) {
	r2 := p.WormRadius * p.WormRadius
	for _, wm := range worms {
		if !wm.Alive {
			continue
		}
		dx, dy := x-wm.X, y-wm.Y
		if dx*dx+dy*dy <= r2 {
			return wm, true
		}
	}
	return core.Worm{}, false
}

func explosionAt(x, y float64, w Weapon) *core.Explosion {
	return &core.Explosion{X: x, Y: y, Radius: w.Radius, Damage: w.Damage}
}

// QuickSimulate is the terrain-only flight used by aim search. It ignores
// worms and fuses and returns where the shell ended up and whether it
// struck ground (only impact weapons report hits).
func (p Params) QuickSimulate(start core.Point, angle, power float64, w Weapon, wind float64, t *terrain.Terrain) (core.Point, bool) {
	speed := w.Speed * power
	x, y := start.X, start.Y
	vx, vy := math.Cos(angle)*speed, math.Sin(angle)*speed
	width := float64(t.Width())
	water := float64(t.WaterLevel())

	for i := 0; i < maxNudge && t.IsSolid(x, y); i++ {
		y--
	}

	for step := 0; step < p.QuickMaxSteps; step++ {
		if w.WindAffected {
			vx += wind * p.WindForce * p.DT
		}
		vy += p.Gravity * p.DT
		x += vx * p.DT
		y += vy * p.DT

		if x < -boundsMargin || x > width+boundsMargin || y > water+boundsMargin {
			return core.Pt(x, y), false
		}
		if y < ceiling {
			continue
		}
		if w.Impact() && t.IsSolid(x, y) {
			return core.Pt(x, y), true
		}
	}
	return core.Pt(x, y), false
}

// Velocity returns the launch velocity for an aim angle and power in [0, 1].
func Velocity(w Weapon, angle, power float64) core.Point {
	speed := w.Speed * power
	return core.Pt(math.Cos(angle)*speed, math.Sin(angle)*speed)
}
