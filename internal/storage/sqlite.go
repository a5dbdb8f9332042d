// Package storage provides SQLite-based persistence for finished play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Puzzles themselves are never stored.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result history.
type Store struct {
	db *sql.DB
}

// Result is one finished (won or abandoned) session.
type Result struct {
	ID        int64
	Colors    int
	Capacity  int
	Spare     int
	Moves     int
	Duration  time.Duration
	Solved    bool
	CreatedAt time.Time
}

// Shape identifies a puzzle size for grouping results.
type Shape struct {
	Colors   int
	Capacity int
	Spare    int
}

// String returns the shape as colors x capacity + spare, e.g. "6x15+2".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d+%d", s.Colors, s.Capacity, s.Spare)
}

// Shape returns the puzzle size of the result.
func (r Result) Shape() Shape {
	return Shape{Colors: r.Colors, Capacity: r.Capacity, Spare: r.Spare}
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
			colors INTEGER NOT NULL,
			capacity INTEGER NOT NULL,
			spare INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			solved INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_shape ON results(colors, capacity, spare);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(colors, capacity, spare, solved, moves);
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

// SaveResult records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results (colors, capacity, spare, moves, duration_ms, solved)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Colors, r.Capacity, r.Spare, r.Moves, r.Duration.Milliseconds(), r.Solved,
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

// TopResults retrieves the best solved sessions for a puzzle shape.
// Results are ordered by fewest moves, then shortest duration.
func (s *Store) TopResults(shape Shape, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, colors, capacity, spare, moves, duration_ms, solved, created_at
		 FROM results
		 WHERE colors = ? AND capacity = ? AND spare = ? AND solved = 1
		 ORDER BY moves ASC, duration_ms ASC
		 LIMIT ?`,
		shape.Colors, shape.Capacity, shape.Spare, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// RecentResults retrieves the latest sessions of any shape, solved or not.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, colors, capacity, spare, moves, duration_ms, solved, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// scanResults reads all rows and closes them.
func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Colors, &r.Capacity, &r.Spare, &r.Moves,
			&durationMS, &r.Solved, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both time.Time and string datetime columns.
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

// BestMoves returns the fewest moves of any solved session for a shape.
// Returns 0 if none was solved.
func (s *Store) BestMoves(shape Shape) (int, error) {
	var moves sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MIN(moves) FROM results
		 WHERE colors = ? AND capacity = ? AND spare = ? AND solved = 1`,
		shape.Colors, shape.Capacity, shape.Spare,
	).Scan(&moves)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best moves: %w", err)
	}

	if !moves.Valid {
		return 0, nil
	}
	return int(moves.Int64), nil
}

// ClearResults deletes all results for a shape.
func (s *Store) ClearResults(shape Shape) error {
	_, err := s.db.Exec(
		"DELETE FROM results WHERE colors = ? AND capacity = ? AND spare = ?",
		shape.Colors, shape.Capacity, shape.Spare,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics for one puzzle shape.
type Stats struct {
	Shape      Shape
	Played     int
	Solved     int
	BestMoves  int
	AvgMoves   float64 // Over solved sessions
	LastPlayed time.Time
}

// SolveRate returns the fraction of sessions that were solved.
func (s Stats) SolveRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Played)
}

// GetStats retrieves aggregated statistics for a shape.
func (s *Store) GetStats(shape Shape) (*Stats, error) {
	stats := &Stats{Shape: shape}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(solved), 0),
		        COALESCE(MIN(CASE WHEN solved = 1 THEN moves END), 0),
		        COALESCE(AVG(CASE WHEN solved = 1 THEN moves END), 0),
		        MAX(created_at)
		 FROM results WHERE colors = ? AND capacity = ? AND spare = ?`,
		shape.Colors, shape.Capacity, shape.Spare,
	).Scan(&stats.Played, &stats.Solved, &stats.BestMoves, &stats.AvgMoves, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every shape that has been played.
func (s *Store) AllStats() ([]Stats, error) {
	rows, err := s.db.Query(
		`SELECT colors, capacity, spare, COUNT(*),
		        COALESCE(SUM(solved), 0),
		        COALESCE(MIN(CASE WHEN solved = 1 THEN moves END), 0),
		        COALESCE(AVG(CASE WHEN solved = 1 THEN moves END), 0),
		        MAX(created_at)
		 FROM results
		 GROUP BY colors, capacity, spare
		 ORDER BY colors, capacity, spare`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	var all []Stats
	for rows.Next() {
		var st Stats
		var lastPlayed any
		if err := rows.Scan(&st.Shape.Colors, &st.Shape.Capacity, &st.Shape.Spare, &st.Played,
			&st.Solved, &st.BestMoves, &st.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		all = append(all, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}
