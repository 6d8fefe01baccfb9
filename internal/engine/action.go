package engine

import "github.com/vovakirdan/worms-arena/internal/core"

// ActionKind is the wire name of an action variant.
type ActionKind string

const (
	KindShoot   ActionKind = "shoot"
	KindMove    ActionKind = "move"
	KindMoveTo  ActionKind = "moveTo"
	KindUseItem ActionKind = "useItem"
	KindSkip    ActionKind = "skip"
)

// Action is what an agent decided to do with its turn. The set of variants
// is closed: Shoot, Move, MoveTo, UseItem and Skip.
type Action interface {
	Kind() ActionKind
	action()
}

// Shoot fires a weapon. Angle is in radians with y pointing down, so
// negative angles aim upward. Power is in [0, 1].
type Shoot struct {
	Weapon core.WeaponID
	Angle  float64
	Power  float64
}

// Move walks a fixed distance left (-1) or right (+1).
type Move struct {
	Direction int
}

// MoveTo walks toward a point, capped at the per-turn move budget.
type MoveTo struct {
	X, Y float64
}

// UseItem spends one consumable from the team inventory.
type UseItem struct {
	Item core.ItemKind
}

// Skip passes the turn.
type Skip struct{}

func (Shoot) Kind() ActionKind   { return KindShoot }
func (Move) Kind() ActionKind    { return KindMove }
func (MoveTo) Kind() ActionKind  { return KindMoveTo }
func (UseItem) Kind() ActionKind { return KindUseItem }
func (Skip) Kind() ActionKind    { return KindSkip }

func (Shoot) action()   {}
func (Move) action()    {}
func (MoveTo) action()  {}
func (UseItem) action() {}
func (Skip) action()    {}
