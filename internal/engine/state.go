package engine

import (
	"github.com/vovakirdan/worms-arena/internal/core"
)

// GameState is a point-in-time copy of a match. Nothing in it aliases
// engine memory.
type GameState struct {
	MatchID            string          `json:"matchId"`
	Seed               int64           `json:"seed"`
	MapWidth           int             `json:"mapWidth"`
	MapHeight          int             `json:"mapHeight"`
	WaterLevel         int             `json:"waterLevel"`
	Teams              []core.Team     `json:"teams"`
	Worms              []core.Worm     `json:"worms"`
	TurnNumber         int             `json:"turnNumber"`
	CurrentTeamIndex   int             `json:"currentTeamIndex"`
	CurrentWormIndices []int           `json:"currentWormIndices"`
	Wind               float64         `json:"wind"`
	Finished           bool            `json:"isFinished"`
	WinnerID           *int            `json:"winnerId"`
	Terrain            string          `json:"terrainBase64"`
	Stats              core.MatchStats `json:"matchStats"`
	Items              []core.Item     `json:"items"`
}

// State returns a deep snapshot of the match.
func (e *Engine) State() GameState {
	teams := make([]core.Team, len(e.teams))
	for i, t := range e.teams {
		teams[i] = t.Clone()
	}
	var winner *int
	if e.winner != nil {
		w := *e.winner
		winner = &w
	}
	return GameState{
		MatchID:            e.matchID,
		Seed:               e.seed,
		MapWidth:           e.terrain.Width(),
		MapHeight:          e.terrain.Height(),
		WaterLevel:         e.terrain.WaterLevel(),
		Teams:              teams,
		Worms:              e.Worms(),
		TurnNumber:         e.turn,
		CurrentTeamIndex:   e.currentTeam,
		CurrentWormIndices: append([]int(nil), e.wormIndex...),
		Wind:               e.wind,
		Finished:           e.finished,
		WinnerID:           winner,
		Terrain:            e.terrain.Encode(),
		Stats:              e.stats.Clone(),
		Items:              append([]core.Item{}, e.items...),
	}
}
