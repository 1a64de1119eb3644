// Package storage provides SQLite-based persistence for survival scores
// and online room results. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies. Only terminal scores are persisted, never
// intermediate simulation state.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is a single survival record: who played, how long they
// lasted, and which seed produced the obstacle field.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int
	Seed      uint32
	CreatedAt time.Time
}

// RoomResult is one participant's outcome in an online room.
type RoomResult struct {
	ID          int64
	RoomCode    string
	Participant string
	Score       int
	Seed        uint32
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path, creating
// parent directories and running migrations as needed.
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);

		CREATE TABLE IF NOT EXISTS room_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_code TEXT NOT NULL,
			participant TEXT NOT NULL,
			score INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_room_results_code ON room_results(room_code);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScore records one survival score.
func (s *Store) SaveScore(player string, score int, seed uint32) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO scores (player, score, seed) VALUES (?, ?, ?)`,
		player, score, seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get score id: %w", err)
	}
	return id, nil
}

// TopScores returns the best scores in descending order.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, player, score, seed, created_at
		 FROM scores ORDER BY score DESC, created_at ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Seed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveRoomResult records one participant's final score in a room.
func (s *Store) SaveRoomResult(roomCode, participant string, score int, seed uint32) error {
	_, err := s.db.Exec(
		`INSERT INTO room_results (room_code, participant, score, seed) VALUES (?, ?, ?, ?)`,
		roomCode, participant, score, seed,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save room result: %w", err)
	}
	return nil
}

// RoomResults returns all recorded results for a room, best first.
func (s *Store) RoomResults(roomCode string) ([]RoomResult, error) {
	rows, err := s.db.Query(
		`SELECT id, room_code, participant, score, seed, created_at
		 FROM room_results WHERE room_code = ? ORDER BY score DESC`, roomCode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query room results: %w", err)
	}
	defer rows.Close()

	var results []RoomResult
	for rows.Next() {
		var r RoomResult
		if err := rows.Scan(&r.ID, &r.RoomCode, &r.Participant, &r.Score, &r.Seed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan room result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
