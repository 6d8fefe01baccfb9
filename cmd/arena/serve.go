package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/worms-arena/internal/api"
	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/broadcast"
	"github.com/vovakirdan/worms-arena/internal/platform/tui"
	"github.com/vovakirdan/worms-arena/internal/registry"
)

var (
	flagHTTPAddr string
	flagSSHAddr  string
	flagHostKey  string
	flagSlots    int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tournament server",
	Long: `Run the match scheduler and serve it to spectators.

Every slot plays matches back to back between randomly drawn agents.
Finished matches update the Elo ratings in the database.

Surfaces:
  - HTTP API under /api and the event stream at /ws (--http)
  - SSH spectator UI when --ssh is set

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arena/host_key

Examples:
  arena serve                       # HTTP on :3001, no SSH
  arena serve --ssh :23234          # Also accept SSH spectators
  arena serve --slots 2             # Fewer parallel matches`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP address (overrides config)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH spectator address, empty disables (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagSlots, "slots", 0, "Parallel match slots (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("http") {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}
	if cmd.Flags().Changed("ssh") {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("slots") {
		cfg.Scheduler.Slots = flagSlots
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger("arena")

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.SyncAgents(registry.List()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := broadcast.NewHub(newLogger("http"))
	defer hub.Close()

	scheduler := arena.New(cfg, hub, logger)
	scheduler.SetRecorder(store)
	hub.OnConnect(func(sub *broadcast.Subscriber) {
		for _, evt := range scheduler.Welcome() {
			sub.Send(evt)
		}
	})

	server := &http.Server{
		Addr: cfg.Server.HTTPAddr,
		Handler: api.NewHandler(api.Config{
			Store:   store,
			Live:    scheduler,
			WS:      http.HandlerFunc(hub.ServeWS),
			Clients: hub.ClientCount,
			Logger:  newLogger("http"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 2)
	go func() {
		logger.Info("listening", "http", cfg.Server.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http server: %w", err)
		}
	}()

	if cfg.Server.SSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     cfg.Server.SSHAddr,
			HostKeyPath: cfg.Server.HostKeyPath,
			IdleTimeout: cfg.Server.IdleTimeout,
		}, hub, newLogger("ssh"))
		if err != nil {
			return err
		}
		go func() {
			if err := sshServer.Run(ctx); err != nil {
				errs <- err
			}
		}()
	}

	schedulerDone := make(chan error, 1)
	go func() {
		schedulerDone <- scheduler.Run(ctx)
	}()

	var runErr error
	schedulerStopped := false
	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case runErr = <-errs:
		logger.Error("server failed", "err", runErr)
	case runErr = <-schedulerDone:
		schedulerStopped = true
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "err", err)
	}
	if !schedulerStopped {
		<-schedulerDone
	}
	return runErr
}
