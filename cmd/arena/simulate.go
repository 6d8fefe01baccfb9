package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/config"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/engine"
	"github.com/vovakirdan/worms-arena/internal/registry"
)

var (
	flagSeed   int64
	flagAgents string
	flagRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play one match offline and print its turn log",
	Long: `Play a single match without pacing and print every turn.

The same seed and agents always produce the same match.

Examples:
  arena simulate
  arena simulate --seed 42 --agents sniper,tank
  arena simulate --seed 7 --agents ninja,berserker --record`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Int64Var(&flagSeed, "seed", 1, "Match seed")
	simulateCmd.Flags().StringVar(&flagAgents, "agents", "sniper,berserker", "Two agent ids, comma separated")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the result and update ratings")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a1, a2, err := parseAgents(flagAgents)
	if err != nil {
		return err
	}

	cfg.Scheduler.Pacing = config.PacingConfig{}
	n := &narrator{out: cmd.OutOrStdout()}
	scheduler := arena.New(cfg, arena.SinkFunc(n.narrate), newLogger("arena"))

	if flagRecord {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SyncAgents(registry.List()); err != nil {
			return err
		}
		scheduler.SetRecorder(store)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := scheduler.PlayMatch(ctx, flagSeed, a1, a2)
	if err != nil && !out.Stopped {
		return err
	}

	fmt.Fprintln(n.out)
	switch winner := out.WinnerAgentID(); {
	case winner == "":
		fmt.Fprintf(n.out, "Draw after %d turns", out.Turns)
	default:
		p, _ := registry.Get(winner)
		fmt.Fprintf(n.out, "%s wins after %d turns", p.Name, out.Turns)
	}
	if out.TimedOut {
		fmt.Fprint(n.out, " (time limit)")
	}
	if out.Stopped {
		fmt.Fprint(n.out, " (stopped)")
	}
	fmt.Fprintln(n.out)
	return nil
}

// parseAgents resolves "a,b" into two distinct registered profiles.
func parseAgents(s string) (registry.Profile, registry.Profile, error) {
	ids := strings.Split(s, ",")
	if len(ids) != 2 {
		return registry.Profile{}, registry.Profile{}, fmt.Errorf("--agents needs exactly two ids, got %q", s)
	}
	a1, err := registry.Get(strings.TrimSpace(ids[0]))
	if err != nil {
		return registry.Profile{}, registry.Profile{}, err
	}
	a2, err := registry.Get(strings.TrimSpace(ids[1]))
	if err != nil {
		return registry.Profile{}, registry.Profile{}, err
	}
	if a1.ID == a2.ID {
		return registry.Profile{}, registry.Profile{}, fmt.Errorf("an agent cannot play itself: %s", a1.ID)
	}
	return a1, a2, nil
}

// narrator prints the events of one match as a turn log.
type narrator struct {
	out   io.Writer
	worms map[int]core.Worm
	teams []core.Team
}

func (n *narrator) narrate(evt arena.Event) {
	switch e := evt.(type) {
	case arena.MatchStart:
		n.teams = e.State.Teams
		n.setWorms(e.State.Worms)
		fmt.Fprintf(n.out, "Match %s  seed %d  %s vs %s\n\n", e.MatchID, e.State.Seed, n.teams[0].Name, n.teams[1].Name)
	case arena.TurnStart:
		w := n.worms[e.ActiveWormID]
		fmt.Fprintf(n.out, "turn %3d  wind %+.2f  %-10s %-8s", e.TurnNumber, e.Wind, n.teams[w.TeamID].Name, w.Name)
	case arena.TurnAction:
		fmt.Fprintf(n.out, "  %s\n", actionText(e.Action))
	case arena.WormUpdate:
		n.setWorms(e.Worms)
		for _, id := range e.Deaths {
			fmt.Fprintf(n.out, "          %s is dead\n", n.worms[id].Name)
		}
	case arena.MatchEnd:
		n.setWorms(e.Worms)
		for _, t := range e.Teams {
			alive, hp := 0, 0
			for _, w := range n.worms {
				if w.TeamID == t.ID && w.Alive {
					alive++
					hp += w.HP
				}
			}
			fmt.Fprintf(n.out, "\n%-10s %d alive, %d hp", t.Name, alive, hp)
		}
		fmt.Fprintln(n.out)
	}
}

func (n *narrator) setWorms(worms []core.Worm) {
	n.worms = make(map[int]core.Worm, len(worms))
	for _, w := range worms {
		n.worms[w.ID] = w
	}
}

func actionText(a engine.Action) string {
	switch act := a.(type) {
	case engine.Shoot:
		return fmt.Sprintf("%-8s angle %4.0f°  power %3.0f%%", act.Weapon, act.Angle*180/math.Pi, act.Power*100)
	case engine.Move:
		if act.Direction < 0 {
			return "move left"
		}
		return "move right"
	case engine.MoveTo:
		return fmt.Sprintf("move to  (%.0f, %.0f)", act.X, act.Y)
	case engine.UseItem:
		return "use " + string(act.Item)
	}
	return "skip"
}
