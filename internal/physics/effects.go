package physics

import (
	"math"

	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/terrain"
)

// WormDamage records hp taken by one worm from one explosion.
type WormDamage struct {
	ID     int `json:"id"`
	Damage int `json:"damage"`
}

// ApplyExplosion removes the blast circle from the terrain and damages
// every living worm inside it with linear falloff from the center.
// Terrain is always destroyed, even when no worm is hurt.
func ApplyExplosion(ex core.Explosion, t *terrain.Terrain, worms []core.Worm) []WormDamage {
	t.DestroyCircle(ex.X, ex.Y, ex.Radius)

	var damaged []WormDamage
	for i := range worms {
		w := &worms[i]
		if !w.Alive {
			continue
		}
		d := math.Hypot(ex.X-w.X, ex.Y-w.Y)
		if d > ex.Radius {
			continue
		}
		factor := 1.0
		if ex.Radius > 0 {
			factor = 1 - d/ex.Radius
		}
		dmg := int(core.Round(float64(ex.Damage) * factor))
		if dmg <= 0 {
			continue
		}
		w.Damage(dmg)
		damaged = append(damaged, WormDamage{ID: w.ID, Damage: dmg})
	}
	return damaged
}

// ApplyWormGravity settles every living worm onto the ground. Worms that
// reach the water line drown; long falls cost hp. It returns the ids of
// worms that died in this pass.
func (p Params) ApplyWormGravity(t *terrain.Terrain, worms []core.Worm) []int {
	var deaths []int
	water := float64(t.WaterLevel())
	for i := range worms {
		w := &worms[i]
		if !w.Alive {
			continue
		}
		y, fall := t.DropWorm(w.X, w.Y, p.WormRadius)
		w.Y = y

		if w.Y >= water {
			w.HP = 0
			w.Alive = false
			deaths = append(deaths, w.ID)
			continue
		}

		if fall > p.FallDamageThreshold {
			w.Damage(int(core.Round((fall - p.FallDamageThreshold) * p.FallDamagePerPixel)))
			if !w.Alive {
				deaths = append(deaths, w.ID)
			}
		}
	}
	return deaths
}
