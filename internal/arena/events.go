package arena

import (
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/engine"
)

// EventType is the wire name of an event.
type EventType string

const (
	TypeWelcome          EventType = "welcome"
	TypeMatchStart       EventType = "match:start"
	TypeTurnStart        EventType = "turn:start"
	TypeTurnAction       EventType = "turn:action"
	TypeMovementUpdate   EventType = "movement:update"
	TypeProjectileUpdate EventType = "projectile:update"
	TypeExplosion        EventType = "explosion"
	TypeTerrainUpdate    EventType = "terrain:update"
	TypeWormUpdate       EventType = "worm:update"
	TypeMatchStats       EventType = "match:stats"
	TypeMatchEnd         EventType = "match:end"
	TypeMatchList        EventType = "match:list"
)

// Event is something observers are told about. The set is closed; switch
// on the concrete type.
type Event interface {
	Type() EventType
	arenaEvent()
}

// Welcome greets a freshly connected observer. Transports send it; the
// scheduler never does.
type Welcome struct {
	ClientCount int
}

// MatchStart carries the full initial state of a match.
type MatchStart struct {
	MatchID string
	State   engine.GameState
}

// TurnStart announces whose turn it is. TurnNumber counts from 1.
type TurnStart struct {
	MatchID      string
	TurnNumber   int
	ActiveWormID int
	Wind         float64
}

// TurnAction reveals what the active agent decided.
type TurnAction struct {
	MatchID    string
	TurnNumber int
	Action     engine.Action
}

// MovementUpdate is the walk path of the active worm.
type MovementUpdate struct {
	MatchID string
	WormID  int
	Frames  []core.Point
}

// ProjectileUpdate is the flight path of the first projectile fired.
type ProjectileUpdate struct {
	MatchID string
	Frames  []core.Point
}

// ExplosionEvent lists the detonations of a turn.
type ExplosionEvent struct {
	MatchID    string
	Explosions []core.Explosion
}

// TerrainUpdate lists the craters carved this turn.
type TerrainUpdate struct {
	MatchID string
	Damage  []core.Crater
}

// WormUpdate is the roster after a turn settles.
type WormUpdate struct {
	MatchID string
	Worms   []core.Worm
	Deaths  []int
}

// StatsUpdate carries the running match counters.
type StatsUpdate struct {
	MatchID string
	Stats   core.MatchStats
}

// MatchEnd closes a match. WinnerID is nil on a draw.
type MatchEnd struct {
	MatchID  string
	WinnerID *int
	Teams    []core.Team
	Worms    []core.Worm
}

// MatchList is the periodic roll call of live matches.
type MatchList struct {
	Matches []MatchSummary
}

func (Welcome) Type() EventType          { return TypeWelcome }
func (MatchStart) Type() EventType       { return TypeMatchStart }
func (TurnStart) Type() EventType        { return TypeTurnStart }
func (TurnAction) Type() EventType       { return TypeTurnAction }
func (MovementUpdate) Type() EventType   { return TypeMovementUpdate }
func (ProjectileUpdate) Type() EventType { return TypeProjectileUpdate }
func (ExplosionEvent) Type() EventType   { return TypeExplosion }
func (TerrainUpdate) Type() EventType    { return TypeTerrainUpdate }
func (WormUpdate) Type() EventType       { return TypeWormUpdate }
func (StatsUpdate) Type() EventType      { return TypeMatchStats }
func (MatchEnd) Type() EventType         { return TypeMatchEnd }
func (MatchList) Type() EventType        { return TypeMatchList }

func (Welcome) arenaEvent()          {}
func (MatchStart) arenaEvent()       {}
func (TurnStart) arenaEvent()        {}
func (TurnAction) arenaEvent()       {}
func (MovementUpdate) arenaEvent()   {}
func (ProjectileUpdate) arenaEvent() {}
func (ExplosionEvent) arenaEvent()   {}
func (TerrainUpdate) arenaEvent()    {}
func (WormUpdate) arenaEvent()       {}
func (StatsUpdate) arenaEvent()      {}
func (MatchEnd) arenaEvent()         {}
func (MatchList) arenaEvent()        {}

// MatchIDOf returns the match an event belongs to, or "" for events that
// are not tied to one match.
func MatchIDOf(evt Event) string {
	switch e := evt.(type) {
	case MatchStart:
		return e.MatchID
	case TurnStart:
		return e.MatchID
	case TurnAction:
		return e.MatchID
	case MovementUpdate:
		return e.MatchID
	case ProjectileUpdate:
		return e.MatchID
	case ExplosionEvent:
		return e.MatchID
	case TerrainUpdate:
		return e.MatchID
	case WormUpdate:
		return e.MatchID
	case StatsUpdate:
		return e.MatchID
	case MatchEnd:
		return e.MatchID
	default:
		return ""
	}
}
