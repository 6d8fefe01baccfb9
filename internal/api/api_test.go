package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/storage"
)

type fakeStore struct {
	agents    []storage.Agent
	stats     map[string]*storage.AgentStats
	matches   []storage.Match
	err       error
	lastLimit int
}

func (f *fakeStore) Leaderboard() ([]storage.Agent, error) { return f.agents, f.err }
func (f *fakeStore) Agents() ([]storage.Agent, error)      { return f.agents, f.err }

func (f *fakeStore) AgentStats(id string) (*storage.AgentStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.stats[id]
	if !ok {
		return nil, storage.ErrAgentNotFound
	}
	return s, nil
}

func (f *fakeStore) RecentMatches(limit int) ([]storage.Match, error) {
	f.lastLimit = limit
	return f.matches, f.err
}

type fakeLive struct{}

func (fakeLive) LiveMatches() []arena.MatchSummary {
	return []arena.MatchSummary{{MatchID: "m1", Agent1: "Sniper", Agent2: "Tank", Alive1: 4, Alive2: 3}}
}

func (fakeLive) WeaponStats() map[core.WeaponID]int {
	return map[core.WeaponID]int{core.Bazooka: 3, core.Grenade: 1, core.Shotgun: 0}
}

func (fakeLive) NextCountdown() int { return 7 }

func newTestHandler(store *fakeStore) http.Handler {
	return NewHandler(Config{
		Store:   store,
		Live:    fakeLive{},
		Clients: func() int { return 2 },
	})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestHandler(&fakeStore{}), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["liveMatches"])
	assert.Equal(t, float64(7), body["nextMatchIn"])
	assert.Equal(t, float64(2), body["clients"])
}

func TestLeaderboardAndAgents(t *testing.T) {
	store := &fakeStore{agents: []storage.Agent{
		{ID: "sniper", Name: "Sniper", Elo: 1250},
		{ID: "tank", Name: "Tank", Elo: 1180},
	}}
	h := newTestHandler(store)

	for _, path := range []string{"/api/leaderboard", "/api/agents"} {
		rec := get(t, h, path)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var agents []storage.Agent
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &agents))
		require.Len(t, agents, 2)
		assert.Equal(t, "sniper", agents[0].ID)
		assert.Equal(t, 1250, agents[0].Elo)
	}
}

func TestAgentStats(t *testing.T) {
	store := &fakeStore{stats: map[string]*storage.AgentStats{
		"sniper": {Agent: storage.Agent{ID: "sniper"}, AverageTurns: 31, LongestWinStreak: 4},
	}}
	h := newTestHandler(store)

	rec := get(t, h, "/api/agent/sniper/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats storage.AgentStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, "sniper", stats.Agent.ID)
	assert.Equal(t, 31, stats.AverageTurns)
	assert.Equal(t, 4, stats.LongestWinStreak)

	rec = get(t, h, "/api/agent/nobody/stats")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"agent not found"}`, rec.Body.String())
}

func TestWeaponStats(t *testing.T) {
	rec := get(t, newTestHandler(&fakeStore{}), "/api/weapon-stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bazooka":3,"grenade":1,"shotgun":0}`, rec.Body.String())
}

func TestLiveMatches(t *testing.T) {
	rec := get(t, newTestHandler(&fakeStore{}), "/api/matches/live")
	require.Equal(t, http.StatusOK, rec.Code)

	var matches []arena.MatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].MatchID)
	assert.Equal(t, 3, matches[0].Alive2)
}

func TestLiveMatchesWithoutScheduler(t *testing.T) {
	h := NewHandler(Config{Store: &fakeStore{}})

	rec := get(t, h, "/api/matches/live")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = get(t, h, "/api/weapon-stats")
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestRecentMatchesLimit(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantLimit int
	}{
		{"default", "", http.StatusOK, defaultRecent},
		{"explicit", "?limit=5", http.StatusOK, 5},
		{"capped", "?limit=100000", http.StatusOK, maxRecent},
		{"zero", "?limit=0", http.StatusBadRequest, 0},
		{"garbage", "?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{matches: []storage.Match{{ID: "m1", Turns: 12}}}
			rec := get(t, newTestHandler(store), "/api/matches/recent"+tt.query)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, expected %d", rec.Code, tt.wantCode)
			}
			if store.lastLimit != tt.wantLimit {
				t.Errorf("limit = %d, expected %d", store.lastLimit, tt.wantLimit)
			}
		})
	}
}

func TestStoreFailure(t *testing.T) {
	h := newTestHandler(&fakeStore{err: errors.New("disk on fire")})

	for _, path := range []string{"/api/leaderboard", "/api/agents", "/api/agent/sniper/stats", "/api/matches/recent"} {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.JSONEq(t, `{"error":"disk on fire"}`, rec.Body.String(), path)
	}
}

func TestPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&fakeStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/leaderboard", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocketMount(t *testing.T) {
	called := false
	h := NewHandler(Config{
		Store: &fakeStore{},
		WS: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		}),
	})

	rec := get(t, h, "/ws")
	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, newTestHandler(&fakeStore{}), "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
