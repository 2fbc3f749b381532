// Package storage provides SQLite-based persistence for finished puzzles.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/circuit-repair/internal/circuit/lifecycle"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry is one solved puzzle.
type ResultEntry struct {
	ID         int64
	Player     string
	LevelID    string
	Difficulty string
	Seed       int64
	GridSize   int
	Moves      int
	MinMoves   int
	Stars      int
	Duration   time.Duration
	CreatedAt  time.Time
}

// DifficultyStats contains aggregated statistics for one difficulty.
type DifficultyStats struct {
	Difficulty string
	Solved     int
	BestTime   time.Duration
	AvgTime    time.Duration
	AvgMoves   float64
	ThreeStars int
	TotalStars int
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			level_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			grid_size INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			min_moves INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 1,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_difficulty ON results(difficulty);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(difficulty, stars DESC, duration_ms ASC);
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

// SaveResult records a finished puzzle for the given player.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(player string, r lifecycle.Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results
		 (player, level_id, difficulty, seed, grid_size, moves, min_moves, stars, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player,
		r.LevelID,
		r.Difficulty,
		r.Seed,
		r.GridSize,
		r.Moves,
		r.MinMoves,
		r.Stars,
		r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopResults retrieves the best N results for the given difficulty.
// Results are ordered by stars, then time, then moves.
func (s *Store) TopResults(difficulty string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, level_id, difficulty, seed, grid_size, moves, min_moves, stars, duration_ms, created_at
		 FROM results
		 WHERE difficulty = ?
		 ORDER BY stars DESC, duration_ms ASC, moves ASC, id ASC
		 LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.Player,
			&e.LevelID,
			&e.Difficulty,
			&e.Seed,
			&e.GridSize,
			&e.Moves,
			&e.MinMoves,
			&e.Stars,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Stats retrieves aggregated statistics for a difficulty.
// A difficulty with no results yields zero counts.
func (s *Store) Stats(difficulty string) (*DifficultyStats, error) {
	stats := &DifficultyStats{Difficulty: difficulty}

	var best, avg sql.NullFloat64
	var avgMoves sql.NullFloat64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), MIN(duration_ms), AVG(duration_ms), AVG(moves),
		        COALESCE(SUM(CASE WHEN stars = 3 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(stars), 0), MAX(created_at)
		 FROM results WHERE difficulty = ?`,
		difficulty,
	).Scan(&stats.Solved, &best, &avg, &avgMoves, &stats.ThreeStars, &stats.TotalStars, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.BestTime = millis(best)
	stats.AvgTime = millis(avg)
	if avgMoves.Valid {
		stats.AvgMoves = avgMoves.Float64
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every difficulty that has results.
func (s *Store) AllStats() (map[string]*DifficultyStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MIN(duration_ms), AVG(duration_ms), AVG(moves),
		        SUM(CASE WHEN stars = 3 THEN 1 ELSE 0 END), SUM(stars), MAX(created_at)
		 FROM results
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DifficultyStats)
	for rows.Next() {
		var st DifficultyStats
		var best, avg, avgMoves sql.NullFloat64
		var lastPlayed any
		if err := rows.Scan(&st.Difficulty, &st.Solved, &best, &avg, &avgMoves, &st.ThreeStars, &st.TotalStars, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTime = millis(best)
		st.AvgTime = millis(avg)
		if avgMoves.Valid {
			st.AvgMoves = avgMoves.Float64
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Difficulty] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearResults deletes all results for the given difficulty, or every
// result when difficulty is empty.
func (s *Store) ClearResults(difficulty string) error {
	var err error
	if difficulty == "" {
		_, err = s.db.Exec("DELETE FROM results")
	} else {
		_, err = s.db.Exec("DELETE FROM results WHERE difficulty = ?", difficulty)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func millis(v sql.NullFloat64) time.Duration {
	if !v.Valid {
		return 0
	}
	return time.Duration(v.Float64 * float64(time.Millisecond))
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
