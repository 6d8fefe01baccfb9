// Package arena runs the never-ending tournament: a fixed number of match
// slots, each playing AI-vs-AI matches back to back and narrating every
// turn to a broadcast sink at a watchable pace.
package arena

import "github.com/vovakirdan/worms-arena/internal/core"

// Sink receives every event the scheduler emits. Implementations must not
// block for long; all slots share one sink.
type Sink interface {
	Broadcast(evt Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Broadcast calls f(evt).
func (f SinkFunc) Broadcast(evt Event) { f(evt) }

// MatchRecorder persists finished matches.
// This allows the scheduler to save results without depending on the storage package.
type MatchRecorder interface {
	RecordMatch(rec MatchRecord) error
}

// MatchRecord is the persisted outcome of one match.
type MatchRecord struct {
	ID            string
	Seed          int64
	Agent1ID      string
	Agent2ID      string
	WinnerAgentID string // Empty on a draw
	Turns         int
}

// MatchSummary is one row of the live match list.
type MatchSummary struct {
	MatchID     string `json:"matchId"`
	Agent1      string `json:"agent1"`
	Agent2      string `json:"agent2"`
	Agent1ID    string `json:"agent1Id"`
	Agent2ID    string `json:"agent2Id"`
	Agent1Color string `json:"agent1Color"`
	Agent2Color string `json:"agent2Color"`
	TurnNumber  int    `json:"turnNumber"`
	Alive1      int    `json:"alive1"`
	Alive2      int    `json:"alive2"`
	TotalHP1    int    `json:"totalHp1"`
	TotalHP2    int    `json:"totalHp2"`
	StartedAt   int64  `json:"startedAt"` // Unix milliseconds
}

// Outcome is how a match ended.
type Outcome struct {
	MatchID  string
	Seed     int64
	Agent1ID string
	Agent2ID string
	Winner   *int // Winning team, nil on a draw
	Turns    int
	TimedOut bool
	Stopped  bool // Ended early by a stop, after the in-flight turn
	Teams    []core.Team
	Worms    []core.Worm
}

// WinnerAgentID returns the id of the winning agent, or "" on a draw.
func (o Outcome) WinnerAgentID() string {
	if o.Winner == nil {
		return ""
	}
	if *o.Winner == 0 {
		return o.Agent1ID
	}
	return o.Agent2ID
}

// Record converts the outcome into its persisted form.
func (o Outcome) Record() MatchRecord {
	return MatchRecord{
		ID:            o.MatchID,
		Seed:          o.Seed,
		Agent1ID:      o.Agent1ID,
		Agent2ID:      o.Agent2ID,
		WinnerAgentID: o.WinnerAgentID(),
		Turns:         o.Turns,
	}
}
