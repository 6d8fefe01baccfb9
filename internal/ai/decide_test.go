package ai

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/worms-arena/internal/config"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/engine"
	"github.com/vovakirdan/worms-arena/internal/physics"
	"github.com/vovakirdan/worms-arena/internal/registry"
	"github.com/vovakirdan/worms-arena/internal/rng"
	"github.com/vovakirdan/worms-arena/internal/terrain"
)

func flat() *terrain.Terrain {
	t := terrain.New(1200, 600, 580)
	for x := 0; x < 1200; x++ {
		for y := 400; y < 580; y++ {
			t.Set(float64(x), float64(y), true)
		}
	}
	return t
}

func fullInventory() *core.Inventory {
	return &core.Inventory{
		Weapons:    map[core.WeaponID]int{core.Bazooka: 5, core.Grenade: 3, core.Shotgun: 2},
		HealthKits: 2,
	}
}

func worm(id, team int, x float64) core.Worm {
	return core.Worm{ID: id, TeamID: team, HP: 100, X: x, Y: 391, Alive: true, Facing: 1}
}

func profile(id string) registry.Profile {
	p, err := registry.Get(id)
	if err != nil {
		panic(err)
	}
	return p
}

func TestDecideSkipsWithoutEnemies(t *testing.T) {
	d := NewDecider(config.Default())
	me := worm(0, 0, 200)
	dead := worm(1, 1, 600)
	dead.Alive, dead.HP = false, 0

	action := d.Decide(me, []core.Worm{me, worm(2, 0, 300), dead}, flat(), 0, profile("balanced"), rng.New(1), fullInventory())
	assert.Equal(t, engine.Skip{}, action)
}

func TestDecideHealsSometimesWhenLow(t *testing.T) {
	d := NewDecider(config.Default())
	me := worm(0, 0, 200)
	me.HP = 15
	worms := []core.Worm{me, worm(1, 1, 700)}

	heals := 0
	for seed := int64(1); seed <= 200; seed++ {
		a := d.Decide(me, worms, flat(), 0, profile("balanced"), rng.New(seed), fullInventory())
		if a == (engine.UseItem{Item: core.ItemHealthKit}) {
			heals++
		}
	}
	assert.Greater(t, heals, 20)
	assert.Less(t, heals, 120)

	noKits := fullInventory()
	noKits.HealthKits = 0
	for seed := int64(1); seed <= 50; seed++ {
		a := d.Decide(me, worms, flat(), 0, profile("balanced"), rng.New(seed), noKits)
		assert.NotEqual(t, engine.KindUseItem, a.Kind())
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	d := NewDecider(config.Default())
	me := worm(0, 0, 200)
	worms := []core.Worm{me, worm(1, 1, 500), worm(2, 1, 900)}

	for seed := int64(1); seed <= 20; seed++ {
		a := d.Decide(me, worms, flat(), 0.3, profile("ninja"), rng.New(seed), fullInventory())
		b := d.Decide(me, worms, flat(), 0.3, profile("ninja"), rng.New(seed), fullInventory())
		assert.Equal(t, a, b)
	}
}

func TestDecideNeverShootsEmptyWeapons(t *testing.T) {
	d := NewDecider(config.Default())
	me := worm(0, 0, 200)
	worms := []core.Worm{me, worm(1, 1, 500)}
	empty := &core.Inventory{Weapons: map[core.WeaponID]int{core.Bazooka: 0, core.Grenade: 0, core.Shotgun: 0}}

	for seed := int64(1); seed <= 50; seed++ {
		a := d.Decide(me, worms, flat(), 0, profile("terminator"), rng.New(seed), empty)
		assert.NotEqual(t, engine.KindShoot, a.Kind())
	}

	onlyGrenade := &core.Inventory{Weapons: map[core.WeaponID]int{core.Grenade: 1}}
	for seed := int64(1); seed <= 50; seed++ {
		a := d.Decide(me, worms, flat(), 0, profile("terminator"), rng.New(seed), onlyGrenade)
		if s, ok := a.(engine.Shoot); ok {
			assert.Equal(t, core.Grenade, s.Weapon)
		}
	}
}

func TestDecideCautiousRetreat(t *testing.T) {
	d := NewDecider(config.Default())
	me := worm(0, 0, 300)
	enemy := worm(1, 1, 350)
	timid := registry.Profile{ID: "timid", Aggression: 0, RiskTolerance: 0.1, Accuracy: 0.5, PreferredRange: registry.RangeFar}

	moves := 0
	for seed := int64(1); seed <= 50; seed++ {
		a := d.Decide(me, []core.Worm{me, enemy}, flat(), 0, timid, rng.New(seed), fullInventory())
		if m, ok := a.(engine.Move); ok {
			moves++
			assert.Equal(t, -1, m.Direction, "should walk away from the enemy")
		}
	}
	assert.Greater(t, moves, 40)
}

func TestChooseWeapon(t *testing.T) {
	r := rng.New(3)

	_, ok := chooseWeapon(100, profile("sniper"), r, &core.Inventory{})
	assert.False(t, ok)

	for i := 0; i < 30; i++ {
		id, ok := chooseWeapon(100, profile("sniper"), r, fullInventory())
		require.True(t, ok)
		assert.Equal(t, core.Shotgun, id, "close range with everything in stock")
	}

	shotgunOnly := &core.Inventory{Weapons: map[core.WeaponID]int{core.Shotgun: 1}}
	id, ok := chooseWeapon(600, profile("sniper"), r, shotgunOnly)
	require.True(t, ok)
	assert.Equal(t, core.Shotgun, id)

	counts := map[core.WeaponID]int{}
	for i := 0; i < 200; i++ {
		id, _ := chooseWeapon(250, profile("sniper"), r, fullInventory())
		counts[id]++
	}
	assert.Zero(t, counts[core.Grenade], "deviation only goes outside the preferred set")
	assert.Greater(t, counts[core.Bazooka], counts[core.Shotgun])

	id, ok = chooseWeapon(250, profile("sniper"), r, nil)
	require.True(t, ok)
	assert.Contains(t, core.WeaponIDs, id)
}

func TestChooseWeaponLeavesCatalogueIntact(t *testing.T) {
	r := rng.New(8)
	want := slices.Clone(core.WeaponIDs)

	deviated := false
	for i := 0; i < 200; i++ {
		id, ok := chooseWeapon(250, profile("sniper"), r, nil)
		require.True(t, ok)
		if id == core.Shotgun {
			deviated = true
		}
	}
	assert.True(t, deviated, "expected at least one deviation to the shotgun")
	assert.Equal(t, want, core.WeaponIDs)
}

func TestAimLandsNearTarget(t *testing.T) {
	d := NewDecider(config.Default())
	tr := flat()
	perfect := registry.Profile{ID: "perfect", Accuracy: 1}
	bazooka, ok := physics.LookupWeapon(core.Bazooka)
	require.True(t, ok)

	tests := []struct {
		name    string
		shooter core.Worm
		target  core.Worm
		right   bool
	}{
		{"to the right", worm(0, 0, 200), worm(1, 1, 450), true},
		{"to the left", worm(0, 0, 800), worm(1, 1, 520), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			angle, power := d.aim(tt.shooter, tt.target, core.Bazooka, 0, tr, perfect, rng.New(1))

			if tt.right {
				assert.Greater(t, angle, -math.Pi/2)
				assert.Less(t, angle, 0.0)
			} else {
				assert.Greater(t, angle, math.Pi)
				assert.Less(t, angle, 3*math.Pi/2)
			}
			assert.GreaterOrEqual(t, power, 0.3)
			assert.LessOrEqual(t, power, 1.0)

			offset := d.phys.WormRadius + launchClear
			start := core.Pt(tt.shooter.X+math.Cos(angle)*offset, tt.shooter.Y+math.Sin(angle)*offset)
			landing, hit := d.phys.QuickSimulate(start, angle, power, bazooka, 0, tr)
			assert.True(t, hit)
			assert.Less(t, landing.Dist(tt.target.Pos()), 40.0)
		})
	}
}

func TestAimNoiseStaysInRange(t *testing.T) {
	d := NewDecider(config.Default())
	wild := registry.Profile{ID: "wild", Accuracy: 0}
	for seed := int64(1); seed <= 50; seed++ {
		_, power := d.aim(worm(0, 0, 200), worm(1, 1, 1100), core.Grenade, -1, flat(), wild, rng.New(seed))
		assert.GreaterOrEqual(t, power, 0.3)
		assert.LessOrEqual(t, power, 1.0)
	}
}

func TestRepositionFindsStandingSpot(t *testing.T) {
	d := NewDecider(config.Default())
	tr := flat()
	me := worm(0, 0, 300)
	enemy := worm(1, 1, 700)

	found := 0
	for seed := int64(1); seed <= 20; seed++ {
		pos, ok := d.reposition(me, enemy, tr, rng.New(seed))
		if !ok {
			continue
		}
		found++
		assert.Equal(t, float64(tr.SurfaceY(pos.X))-d.phys.WormRadius, pos.Y, "spot should sit on the surface")
		assert.Equal(t, 392.0, pos.Y)
		assert.LessOrEqual(t, math.Abs(pos.X-me.X), 120.0)
	}
	assert.Greater(t, found, 0)
}

func TestRepositionRejectsCliffs(t *testing.T) {
	d := NewDecider(config.Default())
	tr := terrain.New(1200, 600, 580) // no ground anywhere
	_, ok := d.reposition(worm(0, 0, 300), worm(1, 1, 700), tr, rng.New(5))
	assert.False(t, ok)
}
