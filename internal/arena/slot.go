package arena

import (
	"sync"
	"time"

	"github.com/vovakirdan/worms-arena/internal/engine"
	"github.com/vovakirdan/worms-arena/internal/registry"
)

// slot is one lane of the scheduler. mu guards the engine, which the
// slot goroutine drives while observers read summaries from it.
type slot struct {
	id int

	mu        sync.Mutex
	engine    *engine.Engine
	agents    [2]registry.Profile
	startedAt time.Time
	countdown int
}

func (sl *slot) attach(e *engine.Engine, agents [2]registry.Profile, at time.Time) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.engine = e
	sl.agents = agents
	sl.startedAt = at
}

func (sl *slot) detach() {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.engine = nil
	sl.agents = [2]registry.Profile{}
}

// with runs fn against the engine under the slot lock.
func (sl *slot) with(fn func(e *engine.Engine)) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	fn(sl.engine)
}

func (sl *slot) setCountdown(n int) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.countdown = n
}

func (sl *slot) getCountdown() int {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.countdown
}

func (sl *slot) start() (MatchStart, bool) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.engine == nil {
		return MatchStart{}, false
	}
	return MatchStart{MatchID: sl.engine.MatchID(), State: sl.engine.State()}, true
}

func (sl *slot) summary() (MatchSummary, bool) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.engine == nil {
		return MatchSummary{}, false
	}

	e := sl.engine
	sum := MatchSummary{
		MatchID:    e.MatchID(),
		Agent1:     sl.agents[0].Name,
		Agent2:     sl.agents[1].Name,
		Agent1ID:   sl.agents[0].ID,
		Agent2ID:   sl.agents[1].ID,
		TurnNumber: e.Turn(),
		StartedAt:  sl.startedAt.UnixMilli(),
	}
	if t, ok := e.Team(0); ok {
		sum.Agent1Color = t.Color
	}
	if t, ok := e.Team(1); ok {
		sum.Agent2Color = t.Color
	}
	for _, w := range e.Worms() {
		if !w.Alive {
			continue
		}
		if w.TeamID == 0 {
			sum.Alive1++
			sum.TotalHP1 += w.HP
		} else {
			sum.Alive2++
			sum.TotalHP2 += w.HP
		}
	}
	return sum, true
}
