package ai

import (
	"slices"

	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/registry"
	"github.com/vovakirdan/worms-arena/internal/rng"
)

// chooseWeapon picks from the weapons with ammo left: close-range weapons
// up close, long-range ones further out, with an occasional deliberate
// deviation to something else in stock.
func chooseWeapon(distance float64, profile registry.Profile, r *rng.RNG, inv *core.Inventory) (core.WeaponID, bool) {
	available := core.WeaponIDs
	if inv != nil {
		available = inv.Available()
	}
	if len(available) == 0 {
		return "", false
	}

	var preferred []core.WeaponID
	switch {
	case distance < closeBand:
		preferred = []core.WeaponID{core.Shotgun, core.Grenade, core.Bazooka}
	case distance < mediumBand:
		if profile.PreferredRange == registry.RangeFar || profile.Accuracy > 0.8 {
			preferred = []core.WeaponID{core.Bazooka, core.Grenade}
		} else {
			preferred = []core.WeaponID{core.Grenade, core.Bazooka}
		}
	default:
		preferred = []core.WeaponID{core.Bazooka, core.Grenade}
	}

	options := slices.DeleteFunc(preferred, func(id core.WeaponID) bool {
		return !slices.Contains(available, id)
	})
	if len(options) == 0 {
		return available[0], true
	}

	if r.Next() > deviateRoll && len(available) > 1 {
		others := slices.DeleteFunc(slices.Clone(available), func(id core.WeaponID) bool {
			return slices.Contains(options, id)
		})
		if len(others) > 0 {
			return others[r.Pick(len(others))], true
		}
	}
	return options[0], true
}
