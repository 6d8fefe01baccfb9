package arena

import (
	"context"
	"time"

	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/engine"
	"github.com/vovakirdan/worms-arena/internal/registry"
)

// play runs one match on sl from first turn to match:end. ctx is only
// checked between turns: a stop lets the in-flight turn finish, then the
// match ends with its current winner, or a draw, and is recorded.
func (s *Scheduler) play(ctx context.Context, sl *slot, matchID string, seed int64, a1, a2 registry.Profile) Outcome {
	e := engine.New(seed, matchID, []string{a1.ID, a2.ID}, s.cfg)
	e.SetTeamName(0, a1.Name)
	e.SetTeamName(1, a2.Name)
	agents := [2]registry.Profile{a1, a2}

	startedAt := s.now()
	sl.attach(e, agents, startedAt)
	defer sl.detach()

	logger := s.logger.With("slot", sl.id, "match", shortID(matchID))
	logger.Info("match started", "agent1", a1.Name, "agent2", a2.Name, "seed", seed)

	start, _ := sl.start()
	s.emit(start)
	_ = sleep(ctx, s.cfg.Scheduler.Pacing.MatchIntro)

	timedOut, stopped := false, false
	for {
		var finished bool
		sl.with(func(e *engine.Engine) { finished = e.Finished() })
		if finished {
			break
		}
		if limit := s.cfg.Match.TimeLimit; limit > 0 && s.now().Sub(startedAt) >= limit {
			sl.with(func(e *engine.Engine) { e.FinishByHP() })
			timedOut = true
			break
		}
		if ctx.Err() != nil {
			stopped = true
			break
		}
		s.playTurn(sl, agents)
	}

	var out Outcome
	sl.with(func(e *engine.Engine) {
		out = Outcome{
			MatchID:  matchID,
			Seed:     seed,
			Agent1ID: a1.ID,
			Agent2ID: a2.ID,
			Turns:    e.Turn(),
			TimedOut: timedOut,
			Stopped:  stopped,
			Worms:    e.Worms(),
		}
		if w, ok := e.Winner(); ok {
			out.Winner = &w
		}
		for t := 0; t < engine.TeamCount; t++ {
			if team, ok := e.Team(t); ok {
				out.Teams = append(out.Teams, team)
			}
		}
	})

	winner := "draw"
	if out.Winner != nil {
		winner = agents[*out.Winner].Name
	}
	if stopped {
		logger.Warn("match stopped", "winner", winner, "turns", out.Turns)
	} else {
		logger.Info("match finished", "winner", winner, "turns", out.Turns, "timeout", timedOut)
	}

	s.emit(MatchEnd{MatchID: matchID, WinnerID: out.Winner, Teams: out.Teams, Worms: out.Worms})

	if s.recorder != nil {
		if err := s.recorder.RecordMatch(out.Record()); err != nil {
			logger.Error("failed to record match", "err", err)
		}
	}
	return out
}

// playTurn drives one turn and narrates it. Its pauses run to completion
// so observers always see a started turn through to worm:update.
func (s *Scheduler) playTurn(sl *slot, agents [2]registry.Profile) {
	pace := s.cfg.Scheduler.Pacing

	var (
		matchID string
		wind    float64
		active  core.Worm
		ok      bool
		turn    int
	)
	sl.with(func(e *engine.Engine) {
		matchID = e.MatchID()
		wind = e.RollWind()
		active, ok = e.ActiveWorm()
		if !ok {
			e.CheckWinCondition()
			if !e.Finished() {
				e.Advance()
			}
			return
		}
		turn = e.Turn() + 1
	})
	if !ok {
		return
	}

	s.emit(TurnStart{MatchID: matchID, TurnNumber: turn, ActiveWormID: active.ID, Wind: wind})
	pause(pace.TurnIntro)

	var action engine.Action
	sl.with(func(e *engine.Engine) {
		team, _ := e.Team(active.TeamID)
		action = s.decider.Decide(active, e.Worms(), e.Terrain(), wind, agents[active.TeamID], e.RNG(), &team.Inventory)
	})

	s.emit(TurnAction{MatchID: matchID, TurnNumber: turn, Action: action})
	pause(pace.ActionReveal)

	var (
		res   engine.TurnResult
		stats core.MatchStats
	)
	sl.with(func(e *engine.Engine) {
		before := e.Stats()
		res = e.ExecuteTurn(action)
		stats = e.Stats()
		s.weapons.Add(before.WeaponsUsed, stats.WeaponsUsed)
	})

	if n := len(res.MovementFrames); n > 0 {
		s.emit(MovementUpdate{MatchID: matchID, WormID: active.ID, Frames: res.MovementFrames})
		pause(perFrame(pace.MovementPerFrame, n, pace.MovementMax))
	}
	if n := len(res.TrajectoryFrames); n > 0 {
		s.emit(ProjectileUpdate{MatchID: matchID, Frames: res.TrajectoryFrames})
		pause(perFrame(pace.ProjectilePerFrame, n, pace.ProjectileMax))
	}
	if len(res.Explosions) > 0 {
		s.emit(ExplosionEvent{MatchID: matchID, Explosions: res.Explosions})
		pause(pace.Explosion)
	}
	if len(res.TerrainDamage) > 0 {
		s.emit(TerrainUpdate{MatchID: matchID, Damage: res.TerrainDamage})
	}
	s.emit(WormUpdate{MatchID: matchID, Worms: res.WormsAfter, Deaths: res.Deaths})
	s.emit(StatsUpdate{MatchID: matchID, Stats: stats})

	pause(pace.TurnOutro)
}

func perFrame(each time.Duration, frames int, limit time.Duration) time.Duration {
	return min(limit, each*time.Duration(frames))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
