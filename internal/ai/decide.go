// Package ai picks an action for the active worm.
//
// A decision is a pure function of the visible match state, the agent's
// personality and the match RNG: target scoring, a weighted choice between
// repositioning and attacking, and a brute-force aim search that flies
// candidate shots through the terrain.
package ai

import (
	"math"
	"sort"

	"github.com/vovakirdan/worms-arena/internal/config"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/engine"
	"github.com/vovakirdan/worms-arena/internal/physics"
	"github.com/vovakirdan/worms-arena/internal/registry"
	"github.com/vovakirdan/worms-arena/internal/rng"
	"github.com/vovakirdan/worms-arena/internal/terrain"
)

const (
	lowHP          = 40
	healRoll       = 0.7
	closeBand      = 150.0
	mediumBand     = 350.0
	deviateRoll    = 0.7
	retreatRange   = 80.0
	approachMin    = 100.0
	approachMax    = 400.0
	fallbackRange  = 200.0
	candidates     = 10
	candidateArc   = 0.8 * math.Pi
	minHop         = 30.0
	surfaceSlack   = 20.0
	angleSteps     = 16
	powerSteps     = 5
	minPower       = 0.3
	launchClear    = 4.0
	noiseAngle     = 0.2
	noisePowerFrac = 0.15
)

// Decider holds the physics and movement limits decisions are made under.
type Decider struct {
	phys    physics.Params
	maxMove float64
}

// NewDecider returns a Decider for the given configuration.
func NewDecider(cfg config.Config) *Decider {
	return &Decider{
		phys:    physics.NewParams(cfg),
		maxMove: cfg.Match.MaxMoveDistance,
	}
}

type target struct {
	worm     core.Worm
	distance float64
	score    float64
}

// Decide returns the action active should take. inv may be nil, in which
// case every weapon is assumed available. Nothing but r is mutated.
func (d *Decider) Decide(active core.Worm, worms []core.Worm, t *terrain.Terrain, wind float64, profile registry.Profile, r *rng.RNG, inv *core.Inventory) engine.Action {
	var targets []target
	for _, w := range worms {
		if !w.Alive || w.TeamID == active.TeamID {
			continue
		}
		dist := active.Pos().Dist(w.Pos())
		score := float64(100-w.HP)*0.5*profile.Aggression + math.Max(0, 500-dist)*0.3
		score *= 0.5 + profile.Aggression*0.5
		targets = append(targets, target{worm: w, distance: dist, score: score})
	}
	if len(targets) == 0 {
		return engine.Skip{}
	}

	if inv != nil && inv.HealthKits > 0 && active.HP < lowHP && r.Next() > healRoll {
		return engine.UseItem{Item: core.ItemHealthKit}
	}

	sort.SliceStable(targets, func(i, j int) bool { return targets[i].score > targets[j].score })
	tgt := targets[0]

	roll := r.Next()
	if roll > profile.Aggression*0.6+profile.RiskTolerance*0.2 && tgt.distance > approachMin && tgt.distance < approachMax {
		if pos, ok := d.reposition(active, tgt.worm, t, r); ok {
			return engine.MoveTo{X: pos.X, Y: pos.Y}
		}
	}

	if roll > profile.Aggression*0.7+profile.RiskTolerance*0.3 && tgt.distance < retreatRange && profile.RiskTolerance < 0.4 {
		dir := 1
		if tgt.worm.X > active.X {
			dir = -1
		}
		return engine.Move{Direction: dir}
	}

	weapon, ok := chooseWeapon(tgt.distance, profile, r, inv)
	if !ok {
		if tgt.distance > fallbackRange && r.Next() > 0.5 {
			if pos, ok := d.reposition(active, tgt.worm, t, r); ok {
				return engine.MoveTo{X: pos.X, Y: pos.Y}
			}
		}
		return engine.Skip{}
	}

	angle, power := d.aim(active, tgt.worm, weapon, wind, t, profile, r)
	return engine.Shoot{Weapon: weapon, Angle: angle, Power: power}
}
