package core

// WeaponID names a weapon in the catalogue.
type WeaponID string

const (
	Bazooka WeaponID = "bazooka"
	Grenade WeaponID = "grenade"
	Shotgun WeaponID = "shotgun"
)

// WeaponIDs lists every weapon in catalogue order.
var WeaponIDs = []WeaponID{Bazooka, Grenade, Shotgun}

// Worm is a single combatant. Dead worms stay in the roster with Alive false.
type Worm struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	TeamID int     `json:"teamId"`
	HP     int     `json:"hp"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Alive  bool    `json:"alive"`
	Facing int     `json:"facing"` // -1 left, +1 right
}

// Pos returns the worm's position.
func (w Worm) Pos() Point {
	return Point{X: w.X, Y: w.Y}
}

// Damage subtracts hp, clamping at zero and flagging death.
func (w *Worm) Damage(hp int) {
	w.HP -= hp
	if w.HP <= 0 {
		w.HP = 0
		w.Alive = false
	}
}

// Inventory is what a team has left to spend. Counts never go negative.
type Inventory struct {
	Weapons     map[WeaponID]int `json:"weapons"`
	HealthKits  int              `json:"healthKits"`
	Shields     int              `json:"shields"`
	SpeedBoosts int              `json:"speedBoosts"`
}

// Clone returns a deep copy.
func (inv Inventory) Clone() Inventory {
	c := inv
	c.Weapons = make(map[WeaponID]int, len(inv.Weapons))
	for id, n := range inv.Weapons {
		c.Weapons[id] = n
	}
	return c
}

// Ammo returns the remaining count for a weapon.
func (inv Inventory) Ammo(id WeaponID) int {
	return inv.Weapons[id]
}

// Available returns the weapons with ammo left, in catalogue order.
func (inv Inventory) Available() []WeaponID {
	var out []WeaponID
	for _, id := range WeaponIDs {
		if inv.Weapons[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}

// Team is one side of a match, driven by a single agent.
type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	AgentID   string    `json:"agentId"`
	Color     string    `json:"color"`
	Inventory Inventory `json:"inventory"`
}

// Clone returns a deep copy.
func (t Team) Clone() Team {
	t.Inventory = t.Inventory.Clone()
	return t
}

// ItemKind is the kind of a map pickup.
type ItemKind string

const (
	ItemHealthKit  ItemKind = "healthKit"
	ItemShield     ItemKind = "shield"
	ItemSpeedBoost ItemKind = "speedBoost"
	ItemWeapon     ItemKind = "weapon"
)

// Item is a pickup lying on the map.
type Item struct {
	ID       string   `json:"id"`
	Kind     ItemKind `json:"type"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	WeaponID WeaponID `json:"weaponId,omitempty"` // set for ItemWeapon
}

// Explosion is a detonation point with its blast parameters.
type Explosion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Damage int     `json:"damage"`
}

// Crater is the terrain circle removed by an explosion.
type Crater struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// MatchStats are running counters for one match.
type MatchStats struct {
	TotalShots       int              `json:"totalShots"`
	TotalDamage      int              `json:"totalDamage"`
	WeaponsUsed      map[WeaponID]int `json:"weaponsUsed"`
	MovementDistance float64          `json:"movementDistance"`
	ItemsPicked      int              `json:"itemsPicked"`
}

// NewMatchStats returns zeroed counters with an entry per weapon.
func NewMatchStats() MatchStats {
	used := make(map[WeaponID]int, len(WeaponIDs))
	for _, id := range WeaponIDs {
		used[id] = 0
	}
	return MatchStats{WeaponsUsed: used}
}

// Clone returns a deep copy.
func (s MatchStats) Clone() MatchStats {
	c := s
	c.WeaponsUsed = make(map[WeaponID]int, len(s.WeaponsUsed))
	for id, n := range s.WeaponsUsed {
		c.WeaponsUsed[id] = n
	}
	return c
}
