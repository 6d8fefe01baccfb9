package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/worms-arena/internal/registry"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the preset agents",
	Long:  `Shows every agent personality registered in the arena.`,
	Run:   runAgents,
}

func runAgents(cmd *cobra.Command, _ []string) {
	profiles := registry.List()
	out := cmd.OutOrStdout()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range profiles {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-12s  %5s  %5s  %5s  %s\n", maxIDLen, "ID", "Name", "Aggr", "Risk", "Acc", "Range")
	fmt.Fprintf(out, "  %-*s  %-12s  %5s  %5s  %5s  %s\n", maxIDLen, "--", "----", "----", "----", "---", "-----")
	for _, p := range profiles {
		fmt.Fprintf(out, "  %-*s  %-12s  %5.2f  %5.2f  %5.2f  %s\n",
			maxIDLen, p.ID, p.Name, p.Aggression, p.RiskTolerance, p.Accuracy, p.PreferredRange)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'arena stats <id>' to see how an agent is doing.")
}
