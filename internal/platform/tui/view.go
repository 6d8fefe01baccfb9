package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/engine"
	"github.com/vovakirdan/worms-arena/internal/terrain"
)

const (
	logSize  = 8 // battle log lines kept per match
	blastTTL = 3 // ticks an explosion marker stays on the map
)

// matchView is what the spectator knows about one match. Views built
// from a match:list entry alone carry only the summary until the next
// match:start.
type matchView struct {
	id         string
	summary    arena.MatchSummary
	teams      []core.Team
	worms      []core.Worm
	terrain    *terrain.Terrain
	turn       int
	wind       float64
	activeWorm int
	trail      []core.Point
	blasts     []core.Explosion
	blastAge   int
	finished   bool
	winner     *int
	log        []string
}

func newMatchView(id string) *matchView {
	return &matchView{id: id, activeWorm: -1}
}

func (v *matchView) start(state engine.GameState) error {
	v.teams = state.Teams
	v.worms = state.Worms
	v.turn = state.TurnNumber
	v.wind = state.Wind
	v.finished = state.Finished
	v.winner = state.WinnerID
	v.trail = nil
	v.blasts = nil

	t, err := terrain.Decode(state.Terrain, state.MapWidth, state.MapHeight, state.WaterLevel)
	if err != nil {
		v.terrain = nil
		return err
	}
	v.terrain = t
	return nil
}

// apply folds one event into the view.
func (v *matchView) apply(evt arena.Event) {
	switch e := evt.(type) {
	case arena.MatchStart:
		if err := v.start(e.State); err != nil {
			v.addLog("map unavailable: " + err.Error())
		}
		v.addLog(fmt.Sprintf("%s vs %s", v.teamName(0), v.teamName(1)))
	case arena.TurnStart:
		v.turn = e.TurnNumber
		v.wind = e.Wind
		v.activeWorm = e.ActiveWormID
		v.trail = nil
		v.addLog(fmt.Sprintf("turn %d: %s (wind %+.2f)", e.TurnNumber, v.wormName(e.ActiveWormID), e.Wind))
	case arena.TurnAction:
		v.addLog(v.wormName(v.activeWorm) + " " + describeAction(e.Action))
	case arena.MovementUpdate:
		if n := len(e.Frames); n > 0 {
			v.moveWorm(e.WormID, e.Frames[n-1])
		}
	case arena.ProjectileUpdate:
		v.trail = e.Frames
	case arena.ExplosionEvent:
		v.blasts = e.Explosions
		v.blastAge = 0
		for _, x := range e.Explosions {
			v.addLog(fmt.Sprintf("boom at (%d, %d)", px(x.X), px(x.Y)))
		}
	case arena.TerrainUpdate:
		if v.terrain != nil {
			for _, c := range e.Damage {
				v.terrain.DestroyCircle(c.X, c.Y, c.Radius)
			}
		}
	case arena.WormUpdate:
		v.worms = e.Worms
		for _, id := range e.Deaths {
			v.addLog(v.wormName(id) + " died")
		}
	case arena.MatchEnd:
		v.finished = true
		v.winner = e.WinnerID
		v.teams = e.Teams
		v.worms = e.Worms
		v.activeWorm = -1
		if e.WinnerID == nil {
			v.addLog("draw")
		} else {
			v.addLog(v.teamName(*e.WinnerID) + " wins")
		}
	}
}

// tick ages the explosion markers.
func (v *matchView) tick() {
	if len(v.blasts) == 0 {
		return
	}
	v.blastAge++
	if v.blastAge >= blastTTL {
		v.blasts = nil
	}
}

func (v *matchView) moveWorm(id int, p core.Point) {
	for i := range v.worms {
		if v.worms[i].ID == id {
			v.worms[i].X = p.X
			v.worms[i].Y = p.Y
			return
		}
	}
}

func (v *matchView) addLog(line string) {
	v.log = append(v.log, line)
	if len(v.log) > logSize {
		v.log = v.log[len(v.log)-logSize:]
	}
}

func (v *matchView) teamName(id int) string {
	for _, t := range v.teams {
		if t.ID == id {
			return t.Name
		}
	}
	switch id {
	case 0:
		return v.summary.Agent1
	case 1:
		return v.summary.Agent2
	}
	return fmt.Sprintf("team %d", id)
}

func (v *matchView) teamColor(id int) core.Color {
	for _, t := range v.teams {
		if t.ID == id {
			return core.ColorForHex(t.Color)
		}
	}
	return core.ColorDefault
}

func (v *matchView) wormName(id int) string {
	for _, w := range v.worms {
		if w.ID == id {
			return w.Name
		}
	}
	return fmt.Sprintf("worm %d", id)
}

// row returns the table columns for this match. Live worm data wins
// over the periodic summary.
func (v *matchView) row() []string {
	s := v.summary
	if len(v.teams) > 0 {
		s.Agent1 = v.teamName(0)
		s.Agent2 = v.teamName(1)
		s.TurnNumber = v.turn
		s.Alive1, s.Alive2, s.TotalHP1, s.TotalHP2 = 0, 0, 0, 0
		for _, w := range v.worms {
			if !w.Alive {
				continue
			}
			if w.TeamID == 0 {
				s.Alive1++
				s.TotalHP1 += w.HP
			} else {
				s.Alive2++
				s.TotalHP2 += w.HP
			}
		}
	}
	status := fmt.Sprintf("%d", s.TurnNumber)
	if v.finished {
		status = "done"
	}
	return []string{
		shortID(v.id),
		s.Agent1,
		s.Agent2,
		status,
		fmt.Sprintf("%d-%d", s.Alive1, s.Alive2),
		fmt.Sprintf("%d-%d", s.TotalHP1, s.TotalHP2),
	}
}

func describeAction(a engine.Action) string {
	switch act := a.(type) {
	case engine.Shoot:
		deg := px(act.Angle * 180 / math.Pi)
		return fmt.Sprintf("fires %s at %d° with %d%% power", act.Weapon, deg, px(act.Power*100))
	case engine.Move:
		if act.Direction < 0 {
			return "walks left"
		}
		return "walks right"
	case engine.MoveTo:
		return fmt.Sprintf("heads for (%d, %d)", px(act.X), px(act.Y))
	case engine.UseItem:
		return fmt.Sprintf("uses %s", act.Item)
	case engine.Skip:
		return "skips"
	}
	return "does nothing"
}

func px(v float64) int {
	return int(core.Round(v))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
