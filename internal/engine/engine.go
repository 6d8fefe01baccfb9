// Package engine is the turn state machine of a single match.
//
// An Engine owns the terrain, the worm roster, both teams and the match
// RNG. Worms live in a slice indexed by id; everything handed out is a
// copy. The engine never fails on a bad action: anything it cannot carry
// out degrades to a no-op.
package engine

import (
	"math"
	"strconv"

	"github.com/vovakirdan/worms-arena/internal/config"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/physics"
	"github.com/vovakirdan/worms-arena/internal/rng"
	"github.com/vovakirdan/worms-arena/internal/terrain"
)

// TeamCount is the number of sides in every match.
const TeamCount = 2

var wormNames = [TeamCount][]string{
	{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"},
	{"Zeus", "Ares", "Hermes", "Apollo", "Poseidon", "Hephaestus"},
}

var defaultColors = [TeamCount]string{"#e74c3c", "#3498db"}

// Engine runs one match.
type Engine struct {
	cfg  config.Config
	phys physics.Params

	matchID string
	seed    int64
	rng     *rng.RNG
	terrain *terrain.Terrain

	teams []core.Team
	worms []core.Worm
	items []core.Item

	turn        int
	currentTeam int
	wormIndex   []int
	wind        float64
	finished    bool
	winner      *int
	stats       core.MatchStats
	itemSeq     int
}

// New sets up a match: terrain from seed, two teams with the starting
// inventory, and each team's worms spread across its half of the map.
// agentIDs[i] drives team i; missing ids get placeholder names.
func New(seed int64, matchID string, agentIDs []string, cfg config.Config) *Engine {
	r := rng.New(seed)
	e := &Engine{
		cfg:       cfg,
		phys:      physics.NewParams(cfg),
		matchID:   matchID,
		seed:      seed,
		rng:       r,
		terrain:   terrain.Generate(r, cfg.Map.Width, cfg.Map.Height, cfg.Map.WaterLevel()),
		wormIndex: make([]int, TeamCount),
		stats:     core.NewMatchStats(),
	}

	for t := 0; t < TeamCount; t++ {
		agent := "agent-" + strconv.Itoa(t)
		name := "Team " + strconv.Itoa(t+1)
		if t < len(agentIDs) {
			agent, name = agentIDs[t], agentIDs[t]
		}
		color := defaultColors[t]
		if t < len(cfg.Teams.Colors) {
			color = cfg.Teams.Colors[t]
		}
		e.teams = append(e.teams, core.Team{
			ID:        t,
			Name:      name,
			AgentID:   agent,
			Color:     color,
			Inventory: startingInventory(cfg.Inventory),
		})
	}

	width := float64(cfg.Map.Width)
	size := cfg.Teams.Size
	for t := 0; t < TeamCount; t++ {
		xMin, xMax := 50.0, width*0.45
		facing := 1
		if t == 1 {
			xMin, xMax = width*0.55, width-50
			facing = -1
		}
		names := wormNames[t]
		for w := 0; w < size; w++ {
			x := math.Floor(xMin + (xMax-xMin)*((float64(w)+0.5)/float64(size)))
			y := float64(e.terrain.SurfaceY(x)) - cfg.Worm.Radius - 1
			if y < 10 {
				y = 10
			}
			e.worms = append(e.worms, core.Worm{
				ID:     len(e.worms),
				Name:   names[w%len(names)],
				TeamID: t,
				HP:     cfg.Worm.HP,
				X:      x,
				Y:      y,
				Alive:  true,
				Facing: facing,
			})
		}
	}

	return e
}

func startingInventory(c config.InventoryConfig) core.Inventory {
	return core.Inventory{
		Weapons: map[core.WeaponID]int{
			core.Bazooka: c.Bazooka,
			core.Grenade: c.Grenade,
			core.Shotgun: c.Shotgun,
		},
		HealthKits:  c.HealthKits,
		Shields:     c.Shields,
		SpeedBoosts: c.SpeedBoosts,
	}
}

// MatchID returns the match identifier.
func (e *Engine) MatchID() string { return e.matchID }

// Seed returns the seed the match was generated from.
func (e *Engine) Seed() int64 { return e.seed }

// Turn returns the number of turns executed so far.
func (e *Engine) Turn() int { return e.turn }

// Wind returns the wind of the current turn.
func (e *Engine) Wind() float64 { return e.wind }

// Finished reports whether the match is over.
func (e *Engine) Finished() bool { return e.finished }

// Winner returns the winning team id, or false for a draw or a match
// still in progress.
func (e *Engine) Winner() (int, bool) {
	if e.winner == nil {
		return 0, false
	}
	return *e.winner, true
}

// RNG returns the match RNG. Agents draw from it so a match replays from
// its seed.
func (e *Engine) RNG() *rng.RNG { return e.rng }

// Terrain returns the live terrain for read-only queries.
func (e *Engine) Terrain() *terrain.Terrain { return e.terrain }

// Physics returns the parameters the match simulates with.
func (e *Engine) Physics() physics.Params { return e.phys }

// Worms returns a copy of the roster.
func (e *Engine) Worms() []core.Worm {
	return append([]core.Worm(nil), e.worms...)
}

// Team returns a copy of team id.
func (e *Engine) Team(id int) (core.Team, bool) {
	if id < 0 || id >= len(e.teams) {
		return core.Team{}, false
	}
	return e.teams[id].Clone(), true
}

// SetTeamName changes a team's display name.
func (e *Engine) SetTeamName(id int, name string) {
	if id >= 0 && id < len(e.teams) {
		e.teams[id].Name = name
	}
}

// Stats returns a copy of the match counters.
func (e *Engine) Stats() core.MatchStats {
	return e.stats.Clone()
}

// RollWind draws this turn's wind in [-1, 1], rounded to hundredths.
func (e *Engine) RollWind() float64 {
	e.wind = core.Round(e.rng.Range(-1, 1)*100) / 100
	return e.wind
}

// ActiveWorm returns the worm due to act for the current team, or false
// when that team has nobody left alive.
func (e *Engine) ActiveWorm() (core.Worm, bool) {
	w := e.activeWorm()
	if w == nil {
		return core.Worm{}, false
	}
	return *w, true
}

func (e *Engine) activeWorm() *core.Worm {
	var alive []*core.Worm
	for i := range e.worms {
		if e.worms[i].TeamID == e.currentTeam && e.worms[i].Alive {
			alive = append(alive, &e.worms[i])
		}
	}
	if len(alive) == 0 {
		return nil
	}
	return alive[e.wormIndex[e.currentTeam]%len(alive)]
}

// Advance hands the turn to the next team that still has living worms,
// rotating the outgoing team's worm index.
func (e *Engine) Advance() {
	e.wormIndex[e.currentTeam]++
	for i := 0; i < TeamCount; i++ {
		e.currentTeam = (e.currentTeam + 1) % TeamCount
		if e.aliveCount(e.currentTeam) > 0 {
			return
		}
	}
}

func (e *Engine) aliveCount(team int) int {
	n := 0
	for _, w := range e.worms {
		if w.TeamID == team && w.Alive {
			n++
		}
	}
	return n
}

// TeamHP returns the summed hp of a team's living worms.
func (e *Engine) TeamHP(team int) int {
	hp := 0
	for _, w := range e.worms {
		if w.TeamID == team && w.Alive {
			hp += w.HP
		}
	}
	return hp
}

// CheckWinCondition ends the match when at most one team has living worms,
// or when the turn ceiling is reached (highest total hp wins).
func (e *Engine) CheckWinCondition() {
	alive := 0
	last := -1
	for t := 0; t < TeamCount; t++ {
		if e.aliveCount(t) > 0 {
			alive++
			last = t
		}
	}
	if alive <= 1 {
		e.finished = true
		e.winner = nil
		if alive == 1 {
			e.winner = &last
		}
	}

	if e.turn >= e.cfg.Match.MaxTurns {
		e.FinishByHP()
	}
}

// FinishByHP ends the match in favour of the team with the most hp left.
// Ties go to the lower team id; nobody wins when all hp is gone.
func (e *Engine) FinishByHP() {
	e.finished = true
	best, bestHP := 0, -1
	for t := 0; t < TeamCount; t++ {
		if hp := e.TeamHP(t); hp > bestHP {
			best, bestHP = t, hp
		}
	}
	e.winner = nil
	if bestHP > 0 {
		e.winner = &best
	}
}
