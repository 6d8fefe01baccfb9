package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/terrain"
)

// flatTerrain returns a 400x400 map with ground from row surface to the
// water line at 380.
func flatTerrain(surface int) *terrain.Terrain {
	t := terrain.New(400, 400, 380)
	for x := 0; x < 400; x++ {
		for y := surface; y < 380; y++ {
			t.Set(float64(x), float64(y), true)
		}
	}
	return t
}

func mustWeapon(t *testing.T, id core.WeaponID) Weapon {
	t.Helper()
	w, ok := LookupWeapon(id)
	require.True(t, ok, "weapon %s missing", id)
	return w
}

func TestCatalogue(t *testing.T) {
	tests := []struct {
		id          core.WeaponID
		damage      int
		radius      float64
		wind        bool
		fuse        float64
		projectiles int
		speed       float64
	}{
		{core.Bazooka, 45, 30, true, 0, 1, 500},
		{core.Grenade, 50, 35, true, 3, 1, 400},
		{core.Shotgun, 25, 12, false, 0, 2, 600},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			w := mustWeapon(t, tt.id)
			assert.Equal(t, tt.damage, w.Damage)
			assert.Equal(t, tt.radius, w.Radius)
			assert.Equal(t, tt.wind, w.WindAffected)
			assert.Equal(t, tt.fuse, w.Fuse)
			assert.Equal(t, tt.projectiles, w.Projectiles)
			assert.Equal(t, tt.speed, w.Speed)
		})
	}

	_, ok := LookupWeapon("railgun")
	assert.False(t, ok)
	assert.Len(t, Weapons(), 3)
}

func TestVerticalShotLandsBelowLaunch(t *testing.T) {
	p := DefaultParams()
	tr := flatTerrain(300)
	bazooka := mustWeapon(t, core.Bazooka)

	res := p.SimulateProjectile(core.Pt(100, 50), core.Pt(0, 100), bazooka, 0, tr, nil)
	require.NotNil(t, res.Explosion)
	assert.InDelta(t, 100, res.Explosion.X, 1e-9)
	assert.GreaterOrEqual(t, res.Explosion.Y, 300.0)
	assert.Less(t, res.Explosion.Y, 310.0)

	landing, hit := p.QuickSimulate(core.Pt(100, 50), math.Pi/2, 0.5, bazooka, 0, tr)
	assert.True(t, hit)
	assert.InDelta(t, 100, landing.X, 1e-9)
	assert.GreaterOrEqual(t, landing.Y, 300.0)
}

func TestFinalPositionIsLastFrame(t *testing.T) {
	p := DefaultParams()
	tr := flatTerrain(300)
	bazooka := mustWeapon(t, core.Bazooka)

	res := p.SimulateProjectile(core.Pt(100, 50), core.Pt(0, 100), bazooka, 0, tr, nil)
	require.NotEmpty(t, res.Frames)
	last := res.Frames[len(res.Frames)-1]
	assert.Equal(t, core.Pt(res.Explosion.X, res.Explosion.Y).Round(), last)
	for _, f := range res.Frames {
		assert.Equal(t, f.Round(), f, "frames are rounded")
	}
}

func TestLeavingMapDoesNotExplode(t *testing.T) {
	p := DefaultParams()
	tr := terrain.New(400, 400, 380)
	bazooka := mustWeapon(t, core.Bazooka)

	res := p.SimulateProjectile(core.Pt(10, 100), core.Pt(-500, 0), bazooka, 0, tr, nil)
	assert.Nil(t, res.Explosion)
	last := res.Frames[len(res.Frames)-1]
	assert.Less(t, last.X, -49.0)

	_, hit := p.QuickSimulate(core.Pt(10, 100), math.Pi, 1, bazooka, 0, tr)
	assert.False(t, hit)
}

func TestImpactOnWorm(t *testing.T) {
	p := DefaultParams()
	tr := terrain.New(400, 400, 380)
	bazooka := mustWeapon(t, core.Bazooka)
	worms := []core.Worm{
		{ID: 0, X: 100, Y: 101, Alive: true, HP: 100},
		{ID: 1, X: 70, Y: 100, Alive: false},
	}

	res := p.SimulateProjectile(core.Pt(50, 100), core.Pt(500, 0), bazooka, 0, tr, worms)
	require.NotNil(t, res.Explosion)
	assert.Equal(t, 100.0, res.Explosion.X)
	assert.Equal(t, 101.0, res.Explosion.Y)
}

func TestFusedWeaponIgnoresWorms(t *testing.T) {
	p := DefaultParams()
	tr := terrain.New(400, 600, 580)
	grenade := mustWeapon(t, core.Grenade)
	worms := []core.Worm{{ID: 0, X: 200, Y: 480, Alive: true, HP: 100}}

	res := p.SimulateProjectile(core.Pt(200, 500), core.Pt(0, -400), grenade, 0, tr, worms)
	require.NotNil(t, res.Explosion, "fuse should expire in the air")
	assert.Equal(t, 50, res.Explosion.Damage)
	assert.Equal(t, 35.0, res.Explosion.Radius)
	// 3 s of flight at 60 Hz, one frame every two steps.
	assert.InDelta(t, 90, len(res.Frames), 2)
}

func TestGrenadeBouncesOffGround(t *testing.T) {
	p := DefaultParams()
	tr := flatTerrain(300)
	grenade := mustWeapon(t, core.Grenade)

	res := p.SimulateProjectile(core.Pt(200, 280), core.Pt(0, 100), grenade, 0, tr, nil)
	require.NotNil(t, res.Explosion)
	assert.InDelta(t, 200, res.Explosion.X, 1e-9)
	assert.Less(t, res.Explosion.Y, 306.0, "grenade should rest on the surface, not sink")
}

func TestWindOnlyAffectsWindWeapons(t *testing.T) {
	p := DefaultParams()
	tr := flatTerrain(300)

	bazooka := mustWeapon(t, core.Bazooka)
	calm, _ := p.QuickSimulate(core.Pt(100, 50), math.Pi/2, 0.3, bazooka, 0, tr)
	windy, _ := p.QuickSimulate(core.Pt(100, 50), math.Pi/2, 0.3, bazooka, 1, tr)
	assert.Greater(t, windy.X, calm.X)

	shotgun := mustWeapon(t, core.Shotgun)
	calm, _ = p.QuickSimulate(core.Pt(100, 50), math.Pi/2, 0.3, shotgun, 0, tr)
	windy, _ = p.QuickSimulate(core.Pt(100, 50), math.Pi/2, 0.3, shotgun, 1, tr)
	assert.Equal(t, calm, windy)
}

func TestEmbeddedStartIsNudged(t *testing.T) {
	p := DefaultParams()
	tr := flatTerrain(300)
	bazooka := mustWeapon(t, core.Bazooka)

	res := p.SimulateProjectile(core.Pt(50, 310), core.Pt(100, -100), bazooka, 0, tr, nil)
	require.NotNil(t, res.Explosion)
	assert.Greater(t, res.Explosion.X, 60.0, "shell should not detonate at its launch point")
}

func TestApplyExplosionFalloff(t *testing.T) {
	tests := []struct {
		name     string
		wormX    float64
		wantDmg  int
		wantHit  bool
		startHP  int
		wantDead bool
	}{
		{"center takes full damage", 200, 45, true, 100, false},
		{"half radius", 215, 23, true, 100, false},
		{"edge takes nothing", 230, 0, false, 100, false},
		{"outside radius", 240, 0, false, 100, false},
		{"lethal clamps at zero", 200, 45, true, 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := terrain.New(400, 400, 380)
			worms := []core.Worm{{ID: 3, X: tt.wormX, Y: 100, HP: tt.startHP, Alive: true}}
			ex := core.Explosion{X: 200, Y: 100, Radius: 30, Damage: 45}

			damaged := ApplyExplosion(ex, tr, worms)
			if !tt.wantHit {
				assert.Empty(t, damaged)
				assert.Equal(t, tt.startHP, worms[0].HP)
				return
			}
			require.Len(t, damaged, 1)
			assert.Equal(t, WormDamage{ID: 3, Damage: tt.wantDmg}, damaged[0])
			assert.GreaterOrEqual(t, worms[0].HP, 0)
			assert.Equal(t, tt.wantDead, !worms[0].Alive)
		})
	}
}

func TestApplyExplosionDestroysTerrainAndSkipsDead(t *testing.T) {
	tr := flatTerrain(300)
	before := tr.SolidCount()
	worms := []core.Worm{{ID: 0, X: 200, Y: 300, HP: 0, Alive: false}}

	damaged := ApplyExplosion(core.Explosion{X: 200, Y: 300, Radius: 20, Damage: 50}, tr, worms)
	assert.Empty(t, damaged)
	assert.Less(t, tr.SolidCount(), before)
	assert.Equal(t, 0, worms[0].HP)
}

func TestApplyWormGravity(t *testing.T) {
	p := DefaultParams()
	tr := flatTerrain(300)
	for y := 0; y < 400; y++ {
		tr.Set(350, float64(y), false)
	}

	worms := []core.Worm{
		{ID: 0, X: 100, Y: 270, HP: 100, Alive: true}, // short drop
		{ID: 1, X: 150, Y: 100, HP: 100, Alive: true}, // long drop kills
		{ID: 2, X: 200, Y: 240, HP: 50, Alive: true},  // medium drop hurts
		{ID: 3, X: 350, Y: 100, HP: 100, Alive: true}, // falls into water
		{ID: 4, X: 250, Y: 50, HP: 0, Alive: false},   // dead stay put
	}

	deaths := p.ApplyWormGravity(tr, worms)
	assert.ElementsMatch(t, []int{1, 3}, deaths)

	assert.Equal(t, 291.0, worms[0].Y)
	assert.Equal(t, 100, worms[0].HP)

	// 191 px fall: round((191 - 40) * 0.8) = 121 > 100.
	assert.Equal(t, 0, worms[1].HP)
	assert.False(t, worms[1].Alive)

	// 51 px fall: round(11 * 0.8) = 9.
	assert.Equal(t, 41, worms[2].HP)
	assert.True(t, worms[2].Alive)

	assert.Equal(t, 0, worms[3].HP)
	assert.False(t, worms[3].Alive)
	assert.Equal(t, 380.0, worms[3].Y)

	assert.Equal(t, 50.0, worms[4].Y)
}
