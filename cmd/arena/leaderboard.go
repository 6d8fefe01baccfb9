package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/worms-arena/internal/storage"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the Elo table",
	Long: `Display every agent ordered by rating.

Examples:
  arena leaderboard
  arena leaderboard --db ./arena.db`,
	RunE: runLeaderboard,
}

var statsCmd = &cobra.Command{
	Use:   "stats <agent>",
	Short: "Show statistics of one agent",
	Long: `Display record, streaks, rivals and recent matches of an agent.

Examples:
  arena stats sniper
  arena stats berserker`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	agents, err := store.Leaderboard()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(agents) == 0 {
		fmt.Fprintln(out, "No agents rated yet.")
		fmt.Fprintln(out, "Run 'arena serve' to start the tournament.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-12s  %5s  %5s  %5s  %5s\n", "Rank", "Agent", "Elo", "W", "L", "D")
	fmt.Fprintf(out, "  %-4s  %-12s  %5s  %5s  %5s  %5s\n", "----", "-----", "---", "-", "-", "-")
	for i, a := range agents {
		fmt.Fprintf(out, "  %-4d  %-12s  %5d  %5d  %5d  %5d\n", i+1, a.Name, a.Elo, a.Wins, a.Losses, a.Draws)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.AgentStats(args[0])
	if errors.Is(err, storage.ErrAgentNotFound) {
		return fmt.Errorf("unknown agent %q, run 'arena agents' to see the roster", args[0])
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a := stats.Agent
	fmt.Fprintf(out, "%s (%s)\n\n", a.Name, a.ID)
	fmt.Fprintf(out, "  Elo             %d\n", a.Elo)
	fmt.Fprintf(out, "  Record          %d W  %d L  %d D\n", a.Wins, a.Losses, a.Draws)
	fmt.Fprintf(out, "  Average turns   %d\n", stats.AverageTurns)
	fmt.Fprintf(out, "  Longest streak  %d\n", stats.LongestWinStreak)
	fmt.Fprintf(out, "  Current streak  %d\n", stats.CurrentStreak)
	if stats.BestOpponent != "" {
		fmt.Fprintf(out, "  Best opponent   %s\n", stats.BestOpponent)
	}
	if stats.WorstOpponent != "" {
		fmt.Fprintf(out, "  Worst opponent  %s\n", stats.WorstOpponent)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  By range")
	for _, r := range []string{"close", "medium", "far"} {
		rec := stats.WinRateByRange[r]
		fmt.Fprintf(out, "    %-7s %d W  %d L\n", r, rec.Wins, rec.Losses)
	}

	if len(stats.RecentMatches) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Recent matches")
		for _, m := range stats.RecentMatches {
			opponent := m.Agent2ID
			if opponent == a.ID {
				opponent = m.Agent1ID
			}
			result := "draw"
			switch m.WinnerAgentID {
			case a.ID:
				result = "win"
			case "":
			default:
				result = "loss"
			}
			fmt.Fprintf(out, "    %s  vs %-12s %-4s  %d turns\n", m.FinishedAt.Format("2006-01-02 15:04"), opponent, result, m.Turns)
		}
	}
	return nil
}
