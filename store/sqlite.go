package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/lazharichir/queens/domain"
)

// SqliteStore persists games as JSON state blobs with a version
// column; compare-and-swap is an UPDATE guarded by the expected
// version.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (and if needed initializes) a sqlite-backed store
func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			state TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			version INTEGER NOT NULL,
			move TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (game_id) REFERENCES games(id)
		)
	`)
	return err
}

// Create stores a new game row
func (s *SqliteStore) Create(g *domain.Game) error {
	state, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO games (id, version, state) VALUES (?, ?, ?)`,
		g.ID, g.Version, string(state),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrExists
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// Load fetches and unmarshals the latest committed state
func (s *SqliteStore) Load(gameID string) (*domain.Game, error) {
	var state string
	err := s.db.QueryRow(`SELECT state FROM games WHERE id = ?`, gameID).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	var g domain.Game
	if err := json.Unmarshal([]byte(state), &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &g, nil
}

// CompareAndSwap commits the next state only if the stored version
// still equals expected.
func (s *SqliteStore) CompareAndSwap(gameID string, expected int64, next *domain.Game) error {
	state, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	res, err := s.db.Exec(
		`UPDATE games SET version = ?, state = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND version = ?`,
		next.Version, string(state), gameID, expected,
	)
	if err != nil {
		return fmt.Errorf("failed to commit game state: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists int
		if err := s.db.QueryRow(`SELECT COUNT(1) FROM games WHERE id = ?`, gameID).Scan(&exists); err == nil && exists == 0 {
			return ErrNotFound
		}
		return ErrStaleVersion
	}
	return nil
}

// AppendMove records a committed move in the audit log
func (s *SqliteStore) AppendMove(gameID string, mv domain.Move, version int64) error {
	payload, err := json.Marshal(mv)
	if err != nil {
		return fmt.Errorf("failed to marshal move: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO moves (game_id, version, move) VALUES (?, ?, ?)`,
		gameID, version, string(payload),
	)
	return err
}

// RecentMoves returns up to limit latest audited moves, oldest first
func (s *SqliteStore) RecentMoves(gameID string, limit int) ([]domain.Move, error) {
	rows, err := s.db.Query(
		`SELECT move FROM (
			SELECT id, move FROM moves WHERE game_id = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		gameID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []domain.Move
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var mv domain.Move
		if err := json.Unmarshal([]byte(payload), &mv); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move: %w", err)
		}
		moves = append(moves, mv)
	}
	return moves, rows.Err()
}

// ListGames returns all stored game IDs
func (s *SqliteStore) ListGames() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM games`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database connection
func (s *SqliteStore) Close() error {
	return s.db.Close()
}
