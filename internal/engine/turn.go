package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/physics"
)

const (
	walkStep     = 2 // pixels per Move sub-step
	climbSearch  = 10
	pickupSlack  = 5
	launchOffset = 4 // distance in front of the body a shell spawns at
)

// spawnable lists what an explosion may leave behind, in draw order.
var spawnable = []core.Item{
	{Kind: core.ItemHealthKit},
	{Kind: core.ItemShield},
	{Kind: core.ItemSpeedBoost},
	{Kind: core.ItemWeapon, WeaponID: core.Bazooka},
	{Kind: core.ItemWeapon, WeaponID: core.Grenade},
	{Kind: core.ItemWeapon, WeaponID: core.Shotgun},
}

// TurnResult describes everything that happened during one turn.
type TurnResult struct {
	TurnNumber       int
	ActiveWormID     int // -1 when nobody could act
	Wind             float64
	Action           Action
	TrajectoryFrames []core.Point // first projectile only
	Explosions       []core.Explosion
	TerrainDamage    []core.Crater
	WormsAfter       []core.Worm
	Deaths           []int
	MovementFrames   []core.Point
	ItemsPicked      []core.Item
}

// ExecuteTurn carries out action for the active worm, settles every worm,
// checks for a winner and hands over to the next team.
func (e *Engine) ExecuteTurn(action Action) TurnResult {
	if action == nil {
		action = Skip{}
	}
	if e.finished {
		return e.emptyResult(action)
	}

	e.turn++
	w := e.activeWorm()
	if w == nil {
		return e.emptyResult(action)
	}

	res := TurnResult{
		TurnNumber:   e.turn,
		ActiveWormID: w.ID,
		Wind:         e.wind,
		Action:       action,
	}

	switch a := action.(type) {
	case Shoot:
		e.shoot(w, a, &res)
	case Move:
		e.move(w, a, &res)
	case MoveTo:
		e.moveTo(w, a, &res)
	case UseItem:
		e.useItem(w, a)
	case Skip:
	}

	res.Deaths = appendUnique(res.Deaths, e.phys.ApplyWormGravity(e.terrain, e.worms)...)
	res.WormsAfter = e.Worms()

	e.CheckWinCondition()
	if !e.finished {
		e.Advance()
	}
	return res
}

func (e *Engine) emptyResult(action Action) TurnResult {
	return TurnResult{
		TurnNumber:   e.turn,
		ActiveWormID: -1,
		Wind:         e.wind,
		Action:       action,
		WormsAfter:   e.Worms(),
	}
}

func (e *Engine) shoot(w *core.Worm, a Shoot, res *TurnResult) {
	team := &e.teams[w.TeamID]
	weapon, ok := physics.LookupWeapon(a.Weapon)
	if !ok || team.Inventory.Weapons[a.Weapon] <= 0 {
		return
	}
	if math.IsNaN(a.Angle) || math.IsInf(a.Angle, 0) || math.IsNaN(a.Power) {
		return
	}
	power := core.ClampF(a.Power, 0, 1)

	team.Inventory.Weapons[a.Weapon]--
	e.stats.TotalShots++
	e.stats.WeaponsUsed[a.Weapon]++

	offset := e.cfg.Worm.Radius + launchOffset
	for p := 0; p < weapon.Projectiles; p++ {
		angle := a.Angle
		if weapon.Projectiles > 1 {
			angle += (float64(p) - float64(weapon.Projectiles-1)/2) * weapon.Spread
		}
		start := core.Pt(w.X+math.Cos(angle)*offset, w.Y+math.Sin(angle)*offset)
		flight := e.phys.SimulateProjectile(start, physics.Velocity(weapon, angle, power), weapon, e.wind, e.terrain, e.worms)

		if p == 0 {
			res.TrajectoryFrames = flight.Frames
		}
		if flight.Explosion == nil {
			continue
		}

		ex := *flight.Explosion
		res.Explosions = append(res.Explosions, ex)
		res.TerrainDamage = append(res.TerrainDamage, core.Crater{X: ex.X, Y: ex.Y, Radius: ex.Radius})
		for _, d := range physics.ApplyExplosion(ex, e.terrain, e.worms) {
			e.stats.TotalDamage += d.Damage
			if !e.worms[d.ID].Alive {
				res.Deaths = appendUnique(res.Deaths, d.ID)
			}
		}

		if e.rng.Next() < e.cfg.Match.ItemSpawnChance {
			e.spawnItem(ex.X, ex.Y)
		}
	}

	if math.Cos(a.Angle) >= 0 {
		w.Facing = 1
	} else {
		w.Facing = -1
	}
}

func (e *Engine) move(w *core.Worm, a Move, res *TurnResult) {
	dir := 1
	if a.Direction < 0 {
		dir = -1
	}
	w.Facing = dir

	r := e.cfg.Worm.Radius
	width := float64(e.cfg.Map.Width)
	x := w.X
	steps := int(math.Abs(e.cfg.Worm.MoveDistance / walkStep))
walk:
	for i := 0; i < steps; i++ {
		next := x + float64(dir*walkStep)
		if next < r || next > width-r {
			break
		}
		feet := w.Y + r
		switch {
		case !e.terrain.IsSolid(next, feet) && !e.terrain.IsSolid(next, feet+1):
			// Nothing underfoot ahead; the gravity pass will drop us.
			x = next
		case !e.terrain.IsSolid(next, w.Y) && !e.terrain.IsSolid(next, w.Y-1):
			x = next
		case !e.terrain.IsSolid(next, w.Y-e.cfg.Worm.ClimbStep):
			x = next
			w.Y -= e.cfg.Worm.ClimbStep
		default:
			break walk
		}
	}
	w.X = core.Round(x)

	e.pickup(w, res)
}

func (e *Engine) moveTo(w *core.Worm, a MoveTo, res *TurnResult) {
	if math.IsNaN(a.X) || math.IsNaN(a.Y) {
		return
	}
	start := w.Pos()
	dx, dy := a.X-start.X, a.Y-start.Y
	distance := math.Hypot(dx, dy)
	if limit := e.cfg.Match.MaxMoveDistance; distance > limit {
		scale := limit / distance
		dx, dy = dx*scale, dy*scale
		distance = math.Hypot(dx, dy)
	}
	if distance == 0 {
		return
	}

	r := e.cfg.Worm.Radius
	width := float64(e.cfg.Map.Width)
	water := float64(e.terrain.WaterLevel())

	var path []core.Point
	steps := int(math.Ceil(distance / e.cfg.Match.MoveStepSize))
	for i := 0; i < steps; i++ {
		progress := float64(i+1) / float64(steps)
		nx := start.X + dx*progress
		ny := start.Y + dy*progress
		if nx < r || nx > width-r || ny < r || ny > water {
			break
		}

		var y float64
		check := math.Min(ny+r, water-1)
		if e.terrain.IsSolid(nx, check) {
			climb := check - 1
			found := false
			for c := 0; c < climbSearch; c++ {
				if climb >= r && !e.terrain.IsSolid(nx, climb) {
					found = true
					break
				}
				climb--
			}
			if !found {
				break
			}
			y = climb - r
		} else {
			y = ny
			for y < water-r && !e.terrain.IsSolid(nx, y+r+1) {
				y++
			}
		}
		path = append(path, core.Pt(nx, y))
	}

	if len(path) == 0 {
		return
	}
	final := path[len(path)-1]
	w.X = core.Round(final.X)
	w.Y = core.Round(final.Y)
	if dx >= 0 {
		w.Facing = 1
	} else {
		w.Facing = -1
	}
	res.MovementFrames = path
	e.stats.MovementDistance += distance

	e.pickup(w, res)
}

func (e *Engine) useItem(w *core.Worm, a UseItem) {
	inv := &e.teams[w.TeamID].Inventory
	switch a.Item {
	case core.ItemHealthKit:
		if inv.HealthKits > 0 {
			inv.HealthKits--
			e.heal(w, e.cfg.Match.HealAmount)
		}
	case core.ItemShield:
		// Shields stand in as a smaller heal.
		if inv.Shields > 0 {
			inv.Shields--
			e.heal(w, e.cfg.Match.ShieldHeal)
		}
	case core.ItemSpeedBoost:
		if inv.SpeedBoosts > 0 {
			inv.SpeedBoosts--
		}
	}
}

func (e *Engine) heal(w *core.Worm, amount int) {
	w.HP += amount
	if w.HP > e.cfg.Worm.HP {
		w.HP = e.cfg.Worm.HP
	}
}

func (e *Engine) spawnItem(x, y float64) {
	item := spawnable[e.rng.Pick(len(spawnable))]
	e.itemSeq++
	item.ID = fmt.Sprintf("item-%d-%d", e.itemSeq, e.rng.Int(0, 10000))
	item.X = core.Round(x)
	item.Y = core.Round(y)
	e.items = append(e.items, item)
}

// pickup collects every item within reach of w into its team inventory.
func (e *Engine) pickup(w *core.Worm, res *TurnResult) {
	reach := e.cfg.Worm.Radius + pickupSlack
	inv := &e.teams[w.TeamID].Inventory

	kept := e.items[:0]
	for _, it := range e.items {
		if math.Hypot(it.X-w.X, it.Y-w.Y) > reach {
			kept = append(kept, it)
			continue
		}
		switch it.Kind {
		case core.ItemHealthKit:
			inv.HealthKits++
		case core.ItemShield:
			inv.Shields++
		case core.ItemSpeedBoost:
			inv.SpeedBoosts++
		case core.ItemWeapon:
			inv.Weapons[it.WeaponID]++
		}
		e.stats.ItemsPicked++
		res.ItemsPicked = append(res.ItemsPicked, it)
	}
	e.items = kept
}

func appendUnique(dst []int, ids ...int) []int {
	for _, id := range ids {
		seen := false
		for _, d := range dst {
			if d == id {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, id)
		}
	}
	return dst
}
