// Package storage provides SQLite-based persistence for agents and match
// results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/worms-arena/internal/arena"
	"github.com/vovakirdan/worms-arena/internal/core"
	"github.com/vovakirdan/worms-arena/internal/registry"
)

const (
	initialElo   = 1200
	eloK         = 32
	keepMatches  = 500
	timeLayout   = "2006-01-02 15:04:05"
	recentWindow = 20
)

// ErrAgentNotFound is returned when an agent id has no row.
var ErrAgentNotFound = errors.New("storage: agent not found")

// Store manages the SQLite database connection.
type Store struct {
	db   *sql.DB
	keep int

	// mu serializes writers so Elo read-modify-write cycles don't interleave.
	mu sync.Mutex
}

var _ arena.MatchRecorder = (*Store)(nil)

// Agent is an agent's persisted profile and rating.
type Agent struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Aggression     float64 `json:"aggression"`
	RiskTolerance  float64 `json:"risk_tolerance"`
	Accuracy       float64 `json:"accuracy"`
	PreferredRange string  `json:"preferred_range"`
	Elo            int     `json:"elo"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Draws          int     `json:"draws"`
}

// Match is a persisted match result.
type Match struct {
	ID            string    `json:"id"`
	Seed          int64     `json:"seed"`
	Agent1ID      string    `json:"agent1_id"`
	Agent2ID      string    `json:"agent2_id"`
	WinnerAgentID string    `json:"winner_agent_id"` // Empty on a draw
	Turns         int       `json:"turns"`
	FinishedAt    time.Time `json:"finished_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, keep: keepMatches}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS agents (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			aggression REAL NOT NULL,
			risk_tolerance REAL NOT NULL,
			accuracy REAL NOT NULL,
			preferred_range TEXT NOT NULL,
			elo INTEGER NOT NULL DEFAULT 1200,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			draws INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_agents_elo ON agents(elo DESC);

		CREATE TABLE IF NOT EXISTS matches (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			seed INTEGER NOT NULL,
			agent1_id TEXT NOT NULL,
			agent2_id TEXT NOT NULL,
			winner_agent_id TEXT,
			turns INTEGER NOT NULL DEFAULT 0,
			finished_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_agent1 ON matches(agent1_id);
		CREATE INDEX IF NOT EXISTS idx_matches_agent2 ON matches(agent2_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// UpsertAgent inserts an agent or refreshes its profile, keeping its
// rating and record.
func (s *Store) UpsertAgent(p registry.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO agents (id, name, aggression, risk_tolerance, accuracy, preferred_range, elo)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			aggression = excluded.aggression,
			risk_tolerance = excluded.risk_tolerance,
			accuracy = excluded.accuracy,
			preferred_range = excluded.preferred_range`,
		p.ID, p.Name, p.Aggression, p.RiskTolerance, p.Accuracy, string(p.PreferredRange), initialElo,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert agent %s: %w", p.ID, err)
	}
	return nil
}

// SyncAgents upserts every profile.
func (s *Store) SyncAgents(profiles []registry.Profile) error {
	for _, p := range profiles {
		if err := s.UpsertAgent(p); err != nil {
			return err
		}
	}
	return nil
}

// RecordMatch stores a finished match and updates both agents' Elo and
// win/loss/draw counts. Agents without a row are left unrated. Only the
// most recent matches are kept.
func (s *Store) RecordMatch(rec arena.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var winner any
	if rec.WinnerAgentID != "" {
		winner = rec.WinnerAgentID
	}
	if _, err := tx.Exec(
		`INSERT INTO matches (id, seed, agent1_id, agent2_id, winner_agent_id, turns, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.Agent1ID, rec.Agent2ID, winner, rec.Turns, time.Now().UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}

	elo1, ok1, err := agentElo(tx, rec.Agent1ID)
	if err != nil {
		return err
	}
	elo2, ok2, err := agentElo(tx, rec.Agent2ID)
	if err != nil {
		return err
	}
	if ok1 && ok2 {
		score, col1, col2 := 0.5, "draws", "draws"
		switch rec.WinnerAgentID {
		case rec.Agent1ID:
			score, col1, col2 = 1, "wins", "losses"
		case rec.Agent2ID:
			score, col1, col2 = 0, "losses", "wins"
		}
		new1, new2 := UpdateElo(elo1, elo2, score)
		if err := rate(tx, rec.Agent1ID, new1, col1); err != nil {
			return err
		}
		if err := rate(tx, rec.Agent2ID, new2, col2); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		`DELETE FROM matches WHERE seq NOT IN (SELECT seq FROM matches ORDER BY seq DESC LIMIT ?)`,
		s.keep,
	); err != nil {
		return fmt.Errorf("storage: cannot prune matches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return nil
}

func agentElo(tx *sql.Tx, id string) (int, bool, error) {
	var elo int
	err := tx.QueryRow(`SELECT elo FROM agents WHERE id = ?`, id).Scan(&elo)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read elo for %s: %w", id, err)
	}
	return elo, true, nil
}

// rate stores a new rating and bumps one of the wins/losses/draws columns.
func rate(tx *sql.Tx, id string, elo int, column string) error {
	// column is one of three fixed names chosen by RecordMatch.
	query := fmt.Sprintf(`UPDATE agents SET elo = ?, %[1]s = %[1]s + 1 WHERE id = ?`, column)
	if _, err := tx.Exec(query, elo, id); err != nil {
		return fmt.Errorf("storage: cannot update rating for %s: %w", id, err)
	}
	return nil
}

// UpdateElo returns both new ratings after a game. score1 is 1 when the
// first player won, 0 when it lost and 0.5 for a draw.
func UpdateElo(elo1, elo2 int, score1 float64) (int, int) {
	expected1 := 1 / (1 + math.Pow(10, float64(elo2-elo1)/400))
	expected2 := 1 - expected1
	new1 := core.Round(float64(elo1) + eloK*(score1-expected1))
	new2 := core.Round(float64(elo2) + eloK*((1-score1)-expected2))
	return int(new1), int(new2)
}

// Leaderboard returns every agent by rating, highest first.
func (s *Store) Leaderboard() ([]Agent, error) {
	return s.queryAgents(`SELECT id, name, aggression, risk_tolerance, accuracy, preferred_range, elo, wins, losses, draws
		 FROM agents ORDER BY elo DESC, rowid ASC`)
}

// Agents returns the stored agents that are still registered presets.
func (s *Store) Agents() ([]Agent, error) {
	all, err := s.queryAgents(`SELECT id, name, aggression, risk_tolerance, accuracy, preferred_range, elo, wins, losses, draws
		 FROM agents ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	agents := make([]Agent, 0, len(all))
	for _, a := range all {
		if registry.Exists(a.ID) {
			agents = append(agents, a)
		}
	}
	return agents, nil
}

// Agent returns one agent by id.
func (s *Store) Agent(id string) (Agent, error) {
	var a Agent
	err := s.db.QueryRow(
		`SELECT id, name, aggression, risk_tolerance, accuracy, preferred_range, elo, wins, losses, draws
		 FROM agents WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.Name, &a.Aggression, &a.RiskTolerance, &a.Accuracy, &a.PreferredRange, &a.Elo, &a.Wins, &a.Losses, &a.Draws)
	if errors.Is(err, sql.ErrNoRows) {
		return Agent{}, ErrAgentNotFound
	}
	if err != nil {
		return Agent{}, fmt.Errorf("storage: cannot get agent %s: %w", id, err)
	}
	return a, nil
}

func (s *Store) queryAgents(query string, args ...any) ([]Agent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query agents: %w", err)
	}
	defer rows.Close()

	agents := []Agent{}
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Aggression, &a.RiskTolerance, &a.Accuracy, &a.PreferredRange, &a.Elo, &a.Wins, &a.Losses, &a.Draws); err != nil {
			return nil, fmt.Errorf("storage: cannot scan agent row: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return agents, nil
}

// RecentMatches returns up to limit matches, newest first.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryMatches(
		`SELECT id, seed, agent1_id, agent2_id, winner_agent_id, turns, finished_at
		 FROM matches ORDER BY seq DESC LIMIT ?`,
		limit,
	)
}

// AgentMatches returns every stored match an agent played, oldest first.
func (s *Store) AgentMatches(agentID string) ([]Match, error) {
	return s.queryMatches(
		`SELECT id, seed, agent1_id, agent2_id, winner_agent_id, turns, finished_at
		 FROM matches WHERE agent1_id = ? OR agent2_id = ? ORDER BY seq ASC`,
		agentID, agentID,
	)
}

// MatchCount returns the number of stored matches.
func (s *Store) MatchCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count matches: %w", err)
	}
	return n, nil
}

func (s *Store) queryMatches(query string, args ...any) ([]Match, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var (
			m          Match
			winner     sql.NullString
			finishedAt any
		)
		if err := rows.Scan(&m.ID, &m.Seed, &m.Agent1ID, &m.Agent2ID, &winner, &m.Turns, &finishedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan match row: %w", err)
		}
		m.WinnerAgentID = winner.String

		// Parse the datetime - handle both time.Time and string
		switch v := finishedAt.(type) {
		case time.Time:
			m.FinishedAt = v
		case string:
			if parsed, err := time.Parse(timeLayout, v); err == nil {
				m.FinishedAt = parsed
			}
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return matches, nil
}
