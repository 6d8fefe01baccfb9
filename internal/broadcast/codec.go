package broadcast

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/engine"
)

// Wire shapes. Every message is a JSON object tagged by "type".

type envelope struct {
	Type arena.EventType `json:"type"`
}

type welcomeMsg struct {
	Type        arena.EventType `json:"type"`
	ClientCount int             `json:"clientCount"`
}

type matchStartMsg struct {
	Type    arena.EventType  `json:"type"`
	MatchID string           `json:"matchId"`
	State   engine.GameState `json:"state"`
}

type turnStartMsg struct {
	Type         arena.EventType `json:"type"`
	MatchID      string          `json:"matchId"`
	TurnNumber   int             `json:"turnNumber"`
	ActiveWormID int             `json:"activeWormId"`
	Wind         float64         `json:"wind"`
}

type turnActionMsg struct {
	Type       arena.EventType `json:"type"`
	MatchID    string          `json:"matchId"`
	TurnNumber int             `json:"turnNumber"`
	Action     actionMsg       `json:"action"`
}

type actionMsg struct {
	Type      engine.ActionKind `json:"type"`
	WeaponID  core.WeaponID     `json:"weaponId,omitempty"`
	Angle     *float64          `json:"angle,omitempty"`
	Power     float64           `json:"power,omitempty"`
	Direction int               `json:"direction,omitempty"`
	TargetX   *float64          `json:"targetX,omitempty"`
	TargetY   *float64          `json:"targetY,omitempty"`
	ItemType  core.ItemKind     `json:"itemType,omitempty"`
}

type movementMsg struct {
	Type    arena.EventType `json:"type"`
	MatchID string          `json:"matchId"`
	WormID  int             `json:"wormId"`
	Frames  []core.Point    `json:"frames"`
}

type projectileMsg struct {
	Type    arena.EventType `json:"type"`
	MatchID string          `json:"matchId"`
	Frames  []core.Point    `json:"frames"`
}

type explosionMsg struct {
	Type       arena.EventType  `json:"type"`
	MatchID    string           `json:"matchId"`
	Explosions []core.Explosion `json:"explosions"`
}

type terrainMsg struct {
	Type    arena.EventType `json:"type"`
	MatchID string          `json:"matchId"`
	Damage  []core.Crater   `json:"damage"`
}

type wormMsg struct {
	Type    arena.EventType `json:"type"`
	MatchID string          `json:"matchId"`
	Worms   []core.Worm     `json:"worms"`
	Deaths  []int           `json:"deaths"`
}

type statsMsg struct {
	Type    arena.EventType `json:"type"`
	MatchID string          `json:"matchId"`
	Stats   core.MatchStats `json:"stats"`
}

type matchEndMsg struct {
	Type     arena.EventType `json:"type"`
	MatchID  string          `json:"matchId"`
	WinnerID *int            `json:"winnerId"`
	Teams    []core.Team     `json:"teams"`
	Worms    []core.Worm     `json:"worms"`
}

type matchListMsg struct {
	Type    arena.EventType      `json:"type"`
	Matches []arena.MatchSummary `json:"matches"`
}

// Encode renders an event as a JSON message.
func Encode(evt arena.Event) ([]byte, error) {
	var msg any
	switch e := evt.(type) {
	case arena.Welcome:
		msg = welcomeMsg{Type: e.Type(), ClientCount: e.ClientCount}
	case arena.MatchStart:
		msg = matchStartMsg{Type: e.Type(), MatchID: e.MatchID, State: e.State}
	case arena.TurnStart:
		msg = turnStartMsg{Type: e.Type(), MatchID: e.MatchID, TurnNumber: e.TurnNumber, ActiveWormID: e.ActiveWormID, Wind: e.Wind}
	case arena.TurnAction:
		action, err := encodeAction(e.Action)
		if err != nil {
			return nil, err
		}
		msg = turnActionMsg{Type: e.Type(), MatchID: e.MatchID, TurnNumber: e.TurnNumber, Action: action}
	case arena.MovementUpdate:
		msg = movementMsg{Type: e.Type(), MatchID: e.MatchID, WormID: e.WormID, Frames: orEmpty(e.Frames)}
	case arena.ProjectileUpdate:
		msg = projectileMsg{Type: e.Type(), MatchID: e.MatchID, Frames: orEmpty(e.Frames)}
	case arena.ExplosionEvent:
		msg = explosionMsg{Type: e.Type(), MatchID: e.MatchID, Explosions: orEmpty(e.Explosions)}
	case arena.TerrainUpdate:
		msg = terrainMsg{Type: e.Type(), MatchID: e.MatchID, Damage: orEmpty(e.Damage)}
	case arena.WormUpdate:
		msg = wormMsg{Type: e.Type(), MatchID: e.MatchID, Worms: orEmpty(e.Worms), Deaths: orEmpty(e.Deaths)}
	case arena.StatsUpdate:
		msg = statsMsg{Type: e.Type(), MatchID: e.MatchID, Stats: e.Stats}
	case arena.MatchEnd:
		msg = matchEndMsg{Type: e.Type(), MatchID: e.MatchID, WinnerID: e.WinnerID, Teams: orEmpty(e.Teams), Worms: orEmpty(e.Worms)}
	case arena.MatchList:
		msg = matchListMsg{Type: e.Type(), Matches: orEmpty(e.Matches)}
	default:
		return nil, fmt.Errorf("broadcast: cannot encode %T", evt)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("broadcast: encode %s: %w", evt.Type(), err)
	}
	return data, nil
}

// Decode parses a message produced by Encode.
func Decode(data []byte) (arena.Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("broadcast: decode: %w", err)
	}

	switch env.Type {
	case arena.TypeWelcome:
		var m welcomeMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.Welcome{ClientCount: m.ClientCount}, nil
	case arena.TypeMatchStart:
		var m matchStartMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.MatchStart{MatchID: m.MatchID, State: m.State}, nil
	case arena.TypeTurnStart:
		var m turnStartMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.TurnStart{MatchID: m.MatchID, TurnNumber: m.TurnNumber, ActiveWormID: m.ActiveWormID, Wind: m.Wind}, nil
	case arena.TypeTurnAction:
		var m turnActionMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		action, err := decodeAction(m.Action)
		if err != nil {
			return nil, err
		}
		return arena.TurnAction{MatchID: m.MatchID, TurnNumber: m.TurnNumber, Action: action}, nil
	case arena.TypeMovementUpdate:
		var m movementMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.MovementUpdate{MatchID: m.MatchID, WormID: m.WormID, Frames: m.Frames}, nil
	case arena.TypeProjectileUpdate:
		var m projectileMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.ProjectileUpdate{MatchID: m.MatchID, Frames: m.Frames}, nil
	case arena.TypeExplosion:
		var m explosionMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.ExplosionEvent{MatchID: m.MatchID, Explosions: m.Explosions}, nil
	case arena.TypeTerrainUpdate:
		var m terrainMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.TerrainUpdate{MatchID: m.MatchID, Damage: m.Damage}, nil
	case arena.TypeWormUpdate:
		var m wormMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.WormUpdate{MatchID: m.MatchID, Worms: m.Worms, Deaths: m.Deaths}, nil
	case arena.TypeMatchStats:
		var m statsMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.StatsUpdate{MatchID: m.MatchID, Stats: m.Stats}, nil
	case arena.TypeMatchEnd:
		var m matchEndMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.MatchEnd{MatchID: m.MatchID, WinnerID: m.WinnerID, Teams: m.Teams, Worms: m.Worms}, nil
	case arena.TypeMatchList:
		var m matchListMsg
		if err := unmarshal(data, &m); err != nil {
			return nil, err
		}
		return arena.MatchList{Matches: m.Matches}, nil
	default:
		return nil, fmt.Errorf("broadcast: unknown message type %q", env.Type)
	}
}

func unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("broadcast: decode: %w", err)
	}
	return nil
}

func encodeAction(a engine.Action) (actionMsg, error) {
	switch a := a.(type) {
	case engine.Shoot:
		return actionMsg{Type: a.Kind(), WeaponID: a.Weapon, Angle: &a.Angle, Power: a.Power}, nil
	case engine.Move:
		return actionMsg{Type: a.Kind(), Direction: a.Direction}, nil
	case engine.MoveTo:
		return actionMsg{Type: a.Kind(), TargetX: &a.X, TargetY: &a.Y}, nil
	case engine.UseItem:
		return actionMsg{Type: a.Kind(), ItemType: a.Item}, nil
	case engine.Skip:
		return actionMsg{Type: a.Kind()}, nil
	default:
		return actionMsg{}, fmt.Errorf("broadcast: cannot encode action %T", a)
	}
}

func decodeAction(m actionMsg) (engine.Action, error) {
	switch m.Type {
	case engine.KindShoot:
		return engine.Shoot{Weapon: m.WeaponID, Angle: deref(m.Angle), Power: m.Power}, nil
	case engine.KindMove:
		return engine.Move{Direction: m.Direction}, nil
	case engine.KindMoveTo:
		return engine.MoveTo{X: deref(m.TargetX), Y: deref(m.TargetY)}, nil
	case engine.KindUseItem:
		return engine.UseItem{Item: m.ItemType}, nil
	case engine.KindSkip:
		return engine.Skip{}, nil
	default:
		return nil, fmt.Errorf("broadcast: unknown action type %q", m.Type)
	}
}

// orEmpty keeps nil slices off the wire; clients expect [] not null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
