package storage

import (
	"fmt"

	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/registry"
)

// minGamesForRivalry is how many games against one opponent count toward
// best/worst opponent.
const minGamesForRivalry = 3

// Record is a win/loss/draw tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Games returns the number of games in the tally.
func (r Record) Games() int {
	return r.Wins + r.Losses + r.Draws
}

// RangeRecord is a win/loss tally against opponents of one preferred range.
type RangeRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// AgentStats is the derived statistics page of one agent.
type AgentStats struct {
	Agent             Agent                  `json:"agent"`
	RecentMatches     []Match                `json:"recentMatches"`
	WinRateByOpponent map[string]Record      `json:"winRateByOpponent"`
	AverageTurns      int                    `json:"averageTurns"`
	WinRateByRange    map[string]RangeRecord `json:"winRateByRange"`
	LongestWinStreak  int                    `json:"longestWinStreak"`
	CurrentStreak     int                    `json:"currentStreak"`
	BestOpponent      string                 `json:"bestOpponent,omitempty"`
	WorstOpponent     string                 `json:"worstOpponent,omitempty"`
}

// AgentStats computes the statistics of one agent from its stored matches.
// Returns ErrAgentNotFound for an unknown id.
func (s *Store) AgentStats(id string) (*AgentStats, error) {
	agent, err := s.Agent(id)
	if err != nil {
		return nil, err
	}
	matches, err := s.AgentMatches(id)
	if err != nil {
		return nil, err
	}
	all, err := s.queryAgents(`SELECT id, name, aggression, risk_tolerance, accuracy, preferred_range, elo, wins, losses, draws FROM agents`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load opponents: %w", err)
	}
	ranges := make(map[string]string, len(all))
	for _, a := range all {
		ranges[a.ID] = a.PreferredRange
	}
	return computeStats(agent, matches, ranges), nil
}

// computeStats derives the statistics page. matches must be oldest first;
// ranges maps agent ids to their preferred range.
func computeStats(agent Agent, matches []Match, ranges map[string]string) *AgentStats {
	stats := &AgentStats{
		Agent:             agent,
		RecentMatches:     []Match{},
		WinRateByOpponent: make(map[string]Record),
		WinRateByRange: map[string]RangeRecord{
			string(registry.RangeClose):  {},
			string(registry.RangeMedium): {},
			string(registry.RangeFar):    {},
		},
	}

	for i := len(matches) - 1; i >= 0 && len(stats.RecentMatches) < recentWindow; i-- {
		stats.RecentMatches = append(stats.RecentMatches, matches[i])
	}

	var (
		opponents []string // first-met order, for stable tie-breaking
		turns     int
		streak    int
	)
	for _, m := range matches {
		opp := m.Agent1ID
		if opp == agent.ID {
			opp = m.Agent2ID
		}
		won := m.WinnerAgentID == agent.ID
		lost := m.WinnerAgentID == opp

		rec, seen := stats.WinRateByOpponent[opp]
		if !seen {
			opponents = append(opponents, opp)
		}
		switch {
		case won:
			rec.Wins++
		case lost:
			rec.Losses++
		default:
			rec.Draws++
		}
		stats.WinRateByOpponent[opp] = rec

		if r, ok := ranges[opp]; ok {
			rr := stats.WinRateByRange[r]
			if won {
				rr.Wins++
			} else if lost {
				rr.Losses++
			}
			stats.WinRateByRange[r] = rr
		}

		turns += m.Turns

		// Draws neither extend nor break a streak.
		if won {
			streak++
			stats.LongestWinStreak = max(stats.LongestWinStreak, streak)
		} else if m.WinnerAgentID != "" {
			streak = 0
		}
	}
	stats.CurrentStreak = streak

	if len(matches) > 0 {
		stats.AverageTurns = int(core.Round(float64(turns) / float64(len(matches))))
	}

	bestRate, worstRate := -1.0, 2.0
	for _, opp := range opponents {
		rec := stats.WinRateByOpponent[opp]
		if rec.Games() < minGamesForRivalry {
			continue
		}
		rate := float64(rec.Wins) / float64(rec.Games())
		if rate > bestRate {
			bestRate = rate
			stats.BestOpponent = opp
		}
		if rate < worstRate {
			worstRate = rate
			stats.WorstOpponent = opp
		}
	}

	return stats
}
