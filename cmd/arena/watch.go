package main

import (
	"context"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/worms-arena/internal/broadcast"
	"github.com/vovakirdan/worms-arena/internal/platform/tui"
)

var flagURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Spectate a running server from the terminal",
	Long: `Connect to a server's event stream and follow the live matches.

Controls:
  up/down or j/k  - Pick the match shown on the map
  ?               - Toggle help
  q / Ctrl+C      - Quit

Examples:
  arena watch
  arena watch --url ws://arena.example.com:3001/ws`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagURL, "url", "ws://localhost:3001/ws", "WebSocket URL of the server")
}

func runWatch(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events, err := broadcast.Dial(ctx, flagURL)
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 0, 0
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	p := tea.NewProgram(tui.NewSpectator(events, ctx.Done(), width, height), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
