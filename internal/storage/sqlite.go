// Package storage keeps the Bear Run run ledger in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/bear-run/internal/games/bearrun"
)

// Outcome values stored in the runs table.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Store manages the SQLite database connection for the run ledger.
type Store struct {
	db *sql.DB
}

// Run is one finished session.
type Run struct {
	ID        int64
	Player    string
	Outcome   string // OutcomeWon or OutcomeLost
	Reason    string // collision, timeout or goal
	Survived  time.Duration
	Spawned   int
	Jumps     int
	Seed      int64
	CreatedAt time.Time
}

// Won reports whether the run reached the goal.
func (r Run) Won() bool {
	return r.Outcome == OutcomeWon
}

// NewRun builds a ledger row from a finished session result.
func NewRun(player string, seed int64, res bearrun.Result) Run {
	outcome := OutcomeLost
	if res.Phase == bearrun.PhaseWon {
		outcome = OutcomeWon
	}
	return Run{
		Player:   player,
		Outcome:  outcome,
		Reason:   res.Reason.String(),
		Survived: res.Elapsed,
		Spawned:  res.Spawned,
		Jumps:    res.Jumps,
		Seed:     seed,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL,
			survived_ms INTEGER NOT NULL,
			spawned INTEGER NOT NULL DEFAULT 0,
			jumps INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome, survived_ms);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Outcome != OutcomeWon && r.Outcome != OutcomeLost {
		return 0, fmt.Errorf("storage: invalid outcome %q", r.Outcome)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (player, outcome, reason, survived_ms, spawned, jumps, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Outcome, r.Reason, r.Survived.Milliseconds(), r.Spawned, r.Jumps, r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, player, outcome, reason, survived_ms, spawned, jumps, seed, created_at`

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// BestRuns ranks wins by fastest finish, then losses by longest survival.
func (s *Store) BestRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 ORDER BY outcome = 'won' DESC,
		          CASE WHEN outcome = 'won' THEN survived_ms ELSE -survived_ms END ASC,
		          id ASC
		 LIMIT ?`,
		limit,
	)
}

// RunsByOutcome returns runs with the given outcome, newest first. An empty
// outcome returns every run.
func (s *Store) RunsByOutcome(outcome string, limit int) ([]Run, error) {
	if outcome == "" {
		return s.RecentRuns(limit)
	}
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE outcome = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		outcome, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var survivedMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Outcome, &r.Reason, &survivedMS, &r.Spawned, &r.Jumps, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Survived = time.Duration(survivedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats contains aggregated statistics over the ledger.
type Stats struct {
	Played       int
	Won          int
	Lost         int
	LongestLoss  time.Duration // Best survival among lost runs
	FastestWin   time.Duration // Zero when nothing was won
	TotalJumps   int64
	LastPlayed   time.Time
	LossByReason map[string]int
}

// Stats aggregates every recorded run.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{LossByReason: make(map[string]int)}

	var fastest, longest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'won'), 0),
		        COALESCE(SUM(outcome = 'lost'), 0),
		        MIN(CASE WHEN outcome = 'won' THEN survived_ms END),
		        MAX(CASE WHEN outcome = 'lost' THEN survived_ms END),
		        COALESCE(SUM(jumps), 0)
		 FROM runs`,
	).Scan(&stats.Played, &stats.Won, &stats.Lost, &fastest, &longest, &stats.TotalJumps)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if fastest.Valid {
		stats.FastestWin = time.Duration(fastest.Int64) * time.Millisecond
	}
	if longest.Valid {
		stats.LongestLoss = time.Duration(longest.Int64) * time.Millisecond
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	rows, err := s.db.Query(`SELECT reason, COUNT(*) FROM runs WHERE outcome = 'lost' GROUP BY reason`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot group losses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.LossByReason[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes the whole ledger.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
