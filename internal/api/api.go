// Package api serves the arena's read-only HTTP endpoints: leaderboard,
// agent pages, weapon usage and the live match list.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/storage"
)

const (
	defaultRecent = 20
	maxRecent     = 500
)

// Store is the read side of persistence the endpoints need.
type Store interface {
	Leaderboard() ([]storage.Agent, error)
	Agents() ([]storage.Agent, error)
	AgentStats(id string) (*storage.AgentStats, error)
	RecentMatches(limit int) ([]storage.Match, error)
}

// Live is the view of the running scheduler.
type Live interface {
	LiveMatches() []arena.MatchSummary
	WeaponStats() map[core.WeaponID]int
	NextCountdown() int
}

// Config wires the handler's collaborators. WS is mounted at /ws when set.
type Config struct {
	Store   Store
	Live    Live
	WS      http.Handler
	Clients func() int
	Logger  *log.Logger
}

type handler struct {
	store   Store
	live    Live
	clients func() int
	logger  *log.Logger
}

// NewHandler returns the HTTP handler for every endpoint.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &handler{store: cfg.Store, live: cfg.Live, clients: cfg.Clients, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("GET /api/leaderboard", h.leaderboard)
	mux.HandleFunc("GET /api/agents", h.agents)
	mux.HandleFunc("GET /api/agent/{id}/stats", h.agentStats)
	mux.HandleFunc("GET /api/weapon-stats", h.weaponStats)
	mux.HandleFunc("GET /api/matches/live", h.liveMatches)
	mux.HandleFunc("GET /api/matches/recent", h.recentMatches)
	if cfg.WS != nil {
		mux.Handle("/ws", cfg.WS)
	}

	return h.withCORS(h.withLogging(mux))
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	payload := struct {
		Status      string `json:"status"`
		ServerTime  int64  `json:"serverTime"`
		LiveMatches int    `json:"liveMatches"`
		NextMatchIn int    `json:"nextMatchIn"`
		Clients     int    `json:"clients"`
	}{
		Status:     "ok",
		ServerTime: time.Now().UnixMilli(),
	}
	if h.live != nil {
		payload.LiveMatches = len(h.live.LiveMatches())
		payload.NextMatchIn = h.live.NextCountdown()
	}
	if h.clients != nil {
		payload.Clients = h.clients()
	}
	h.writeJSON(w, http.StatusOK, payload)
}

func (h *handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	agents, err := h.store.Leaderboard()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, agents)
}

func (h *handler) agents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.store.Agents()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, agents)
}

func (h *handler) agentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.AgentStats(r.PathValue("id"))
	if errors.Is(err, storage.ErrAgentNotFound) {
		h.writeError(w, http.StatusNotFound, "agent not found")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *handler) weaponStats(w http.ResponseWriter, r *http.Request) {
	stats := map[core.WeaponID]int{}
	if h.live != nil {
		stats = h.live.WeaponStats()
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *handler) liveMatches(w http.ResponseWriter, r *http.Request) {
	matches := []arena.MatchSummary{}
	if h.live != nil {
		matches = h.live.LiveMatches()
	}
	h.writeJSON(w, http.StatusOK, matches)
}

func (h *handler) recentMatches(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecent
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxRecent)
	}

	matches, err := h.store.RecentMatches(limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, matches)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "err", err)
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response", "err", err)
		http.Error(w, `{"error":"failed to encode"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
