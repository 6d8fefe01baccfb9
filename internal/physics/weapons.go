package physics

import "github.com/vovakirdan/worms-arena/internal/core"

// Weapon describes how a weapon's projectiles fly and detonate.
type Weapon struct {
	ID           core.WeaponID `json:"id"`
	Name         string        `json:"name"`
	Damage       int           `json:"damage"`
	Radius       float64       `json:"radius"`
	WindAffected bool          `json:"windAffected"`
	Fuse         float64       `json:"fuseTime"` // seconds; 0 detonates on impact
	Projectiles  int           `json:"projectileCount"`
	Spread       float64       `json:"spreadAngle"` // radians between pellets
	Speed        float64       `json:"speedMultiplier"`
}

// Impact reports whether the weapon detonates on contact.
func (w Weapon) Impact() bool {
	return w.Fuse == 0
}

var catalogue = map[core.WeaponID]Weapon{
	core.Bazooka: {
		ID:           core.Bazooka,
		Name:         "Bazooka",
		Damage:       45,
		Radius:       30,
		WindAffected: true,
		Projectiles:  1,
		Speed:        500,
	},
	core.Grenade: {
		ID:           core.Grenade,
		Name:         "Grenade",
		Damage:       50,
		Radius:       35,
		WindAffected: true,
		Fuse:         3,
		Projectiles:  1,
		Speed:        400,
	},
	core.Shotgun: {
		ID:          core.Shotgun,
		Name:        "Shotgun",
		Damage:      25,
		Radius:      12,
		Projectiles: 2,
		Spread:      0.08,
		Speed:       600,
	},
}

// LookupWeapon returns the catalogue entry for id.
func LookupWeapon(id core.WeaponID) (Weapon, bool) {
	w, ok := catalogue[id]
	return w, ok
}

// Weapons returns the full catalogue in a stable order.
func Weapons() []Weapon {
	out := make([]Weapon, 0, len(core.WeaponIDs))
	for _, id := range core.WeaponIDs {
		out = append(out, catalogue[id])
	}
	return out
}
