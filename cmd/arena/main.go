// arena runs an endless tournament of artillery matches between AI teams
// and streams every turn to spectators.
//
// Usage:
//
//	arena serve                    - Run the match scheduler with HTTP, WebSocket and SSH surfaces
//	arena simulate                 - Play one headless match and print its turn log
//	arena agents                   - List the preset agents
//	arena leaderboard              - Show the Elo table
//	arena stats <agent>            - Show statistics of one agent
//	arena watch                    - Spectate a running server in the terminal
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.arena/arena.yaml, ./configs/arena.yaml)
//	--db <path>         - Database path (default from config: ~/.arena/arena.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/worms-arena/internal/config"
	"github.com/vovakirdan/worms-arena/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "worms.arena - AI teams fight artillery duels around the clock",
	Long: `worms.arena runs many matches in parallel between AI-controlled teams
of worms on destructible terrain, rates the agents with Elo and streams
every turn to web and terminal spectators.

Available commands:
  serve        - Run the tournament server
  simulate     - Play one match offline
  agents       - List the preset agents
  leaderboard  - Show the Elo table
  stats        - Show one agent's statistics
  watch        - Spectate a server from the terminal

Examples:
  arena serve
  arena simulate --seed 42 --agents sniper,tank
  arena stats berserker
  arena watch --url ws://localhost:3001/ws`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig resolves the configuration for the current flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.Server.DBPath = flagDBPath
	}
	return cfg, nil
}

// newLogger returns a stderr logger with the given prefix at the
// configured level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// openStore opens the configured database.
func openStore(cfg config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.Server.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}
