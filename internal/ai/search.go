package ai

import (
	"math"
	"sort"

	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/physics"
	"github.com/vovakirdan/worms-arena/internal/registry"
	"github.com/vovakirdan/worms-arena/internal/rng"
	"github.com/vovakirdan/worms-arena/internal/terrain"
)

type spot struct {
	pos   core.Point
	score float64
}

// reposition samples standing spots within the move budget in a forward
// arc and returns the best by shooting distance to tgt and elevation.
func (d *Decider) reposition(w, tgt core.Worm, t *terrain.Terrain, r *rng.RNG) (core.Point, bool) {
	rad := d.phys.WormRadius
	width := float64(t.Width())
	water := float64(t.WaterLevel())

	var spots []spot
	for i := 0; i < candidates; i++ {
		angle := (r.Next() - 0.5) * candidateArc
		hop := minHop + r.Next()*(d.maxMove-minHop)
		cx := w.X + math.Cos(angle)*hop
		cy := w.Y + math.Sin(angle)*hop

		if cx < rad || cx > width-rad || cy < rad || cy > water-rad {
			continue
		}
		stand := float64(t.SurfaceY(cx)) - rad
		if math.Abs(cy-stand) > surfaceSlack {
			continue
		}

		dist := core.Pt(cx, cy).Dist(tgt.Pos())
		score := 10.0
		if dist > 150 && dist < 350 {
			score += 50
		}
		if cy < tgt.Y {
			score += 20
		}
		if dist < 100 {
			score -= 30
		}
		spots = append(spots, spot{pos: core.Pt(cx, stand), score: score})
	}
	if len(spots) == 0 {
		return core.Point{}, false
	}

	sort.SliceStable(spots, func(i, j int) bool { return spots[i].score > spots[j].score })
	return spots[0].pos, true
}

// aim flies every angle/power pair on the search grid and keeps the one
// landing nearest tgt, then blurs it by the agent's inaccuracy.
func (d *Decider) aim(w, tgt core.Worm, id core.WeaponID, wind float64, t *terrain.Terrain, profile registry.Profile, r *rng.RNG) (float64, float64) {
	dir := 1.0
	if tgt.X-w.X <= 0 {
		dir = -1
	}

	bestAngle := -0.5
	if dir < 0 {
		bestAngle = math.Pi + 0.5
	}
	bestPower := 0.7

	if weapon, ok := physics.LookupWeapon(id); ok {
		offset := d.phys.WormRadius + launchClear
		bestDist := math.Inf(1)
		for i := 0; i < angleSteps; i++ {
			up := (5 + 70*float64(i)/float64(angleSteps-1)) * math.Pi / 180
			angle := -up
			if dir < 0 {
				angle = math.Pi + up
			}
			start := core.Pt(w.X+math.Cos(angle)*offset, w.Y+math.Sin(angle)*offset)
			for j := 0; j < powerSteps; j++ {
				power := 0.4 + 0.6*float64(j)/float64(powerSteps-1)
				landing, _ := d.phys.QuickSimulate(start, angle, power, weapon, wind, t)
				if dist := landing.Dist(tgt.Pos()); dist < bestDist {
					bestDist = dist
					bestAngle = angle
					bestPower = power
				}
			}
		}
	}

	noise := (1 - profile.Accuracy) * noiseAngle
	bestAngle += (r.Next() - 0.5) * 2 * noise
	bestPower += (r.Next() - 0.5) * 2 * noise * noisePowerFrac
	return bestAngle, core.ClampF(bestPower, minPower, 1)
}
