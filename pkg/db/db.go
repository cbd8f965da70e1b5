// Package db stores an index of analyzed episodes in SQLite.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	dbFileName = "episodes.db"
	dbDirName  = ".epilog"
)

// Run is one indexing pass over a set of trajectory files.
type Run struct {
	RunID        string
	CreatedAt    time.Time
	FileCount    int
	EpisodeCount int
	WinCount     int
	LossCount    int
}

// EpisodeRow is the indexed form of a single episode.
type EpisodeRow struct {
	SourceFile       string
	SourceLine       int
	AgentName        string
	AgentRole        string
	EndReason        string
	Outcome          string
	Steps            int
	TotalReward      float64
	FinalReward      float64
	RepeatedActions  int
	TotalRepetitions int
	RepeatPct        float64
}

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the episode index in the default location.
func Open() (*DB, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return OpenPath(filepath.Join(home, dbDirName, dbFileName))
}

// OpenPath opens or creates the episode index at the given path.
func OpenPath(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: dbPath,
	}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// initSchema creates tables if they don't exist
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		file_count INTEGER NOT NULL,
		episode_count INTEGER NOT NULL,
		win_count INTEGER NOT NULL,
		loss_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS episodes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		source_file TEXT NOT NULL,
		source_line INTEGER NOT NULL,
		agent_name TEXT NOT NULL,
		agent_role TEXT NOT NULL,
		end_reason TEXT NOT NULL,
		outcome TEXT NOT NULL,
		steps INTEGER NOT NULL,
		total_reward REAL NOT NULL,
		final_reward REAL NOT NULL,
		repeated_actions INTEGER NOT NULL,
		total_repetitions INTEGER NOT NULL,
		repeat_pct REAL NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_episodes_run ON episodes(run_id);
	CREATE INDEX IF NOT EXISTS idx_episodes_outcome ON episodes(outcome);
	`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// InsertRun stores a run and its episodes in one transaction and returns
// the generated run ID.
func (db *DB) InsertRun(fileCount int, episodes []EpisodeRow) (string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()

	var wins, losses int
	for _, e := range episodes {
		switch e.Outcome {
		case "win":
			wins++
		case "loss":
			losses++
		}
	}

	runSQL := `
		INSERT INTO runs (run_id, created_at, file_count, episode_count, win_count, loss_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(runSQL, runID, time.Now(), fileCount, len(episodes), wins, losses)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	episodeSQL := `
		INSERT INTO episodes (run_id, source_file, source_line, agent_name, agent_role,
			end_reason, outcome, steps, total_reward, final_reward,
			repeated_actions, total_repetitions, repeat_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, e := range episodes {
		_, err = tx.Exec(episodeSQL, runID, e.SourceFile, e.SourceLine, e.AgentName, e.AgentRole,
			e.EndReason, e.Outcome, e.Steps, e.TotalReward, e.FinalReward,
			e.RepeatedActions, e.TotalRepetitions, e.RepeatPct)
		if err != nil {
			return "", fmt.Errorf("failed to insert episode: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return runID, nil
}

// GetRecentRuns returns the N most recent runs
func (db *DB) GetRecentRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, file_count, episode_count, win_count, loss_count
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID,
			&r.CreatedAt,
			&r.FileCount,
			&r.EpisodeCount,
			&r.WinCount,
			&r.LossCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRunCount returns the total number of runs
func (db *DB) GetRunCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

// GetEpisodeCount returns the total number of indexed episodes
func (db *DB) GetEpisodeCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM episodes").Scan(&count)
	return count, err
}
