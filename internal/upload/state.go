package upload

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/claude/runsync/internal/models"
)

// StateDB tracks which calendar events have already been uploaded so
// re-running a sync does not create duplicate workouts. Events are keyed
// by their calendar UID plus a hash of the converted workout, so an
// edited description re-uploads while an unchanged one is skipped.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS uploaded_workouts (
		uid          TEXT PRIMARY KEY,
		hash         TEXT NOT NULL,
		workout_date TEXT NOT NULL,
		uploaded_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsUploaded checks whether an event's workout was already uploaded with
// identical content.
func (s *StateDB) IsUploaded(uid, hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM uploaded_workouts WHERE uid = ? AND hash = ?`,
		uid, hash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkUploaded records that an event's workout was successfully uploaded.
func (s *StateDB) MarkUploaded(uid, hash, workoutDate string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO uploaded_workouts (uid, hash, workout_date) VALUES (?, ?, ?)`,
		uid, hash, workoutDate,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashWorkout computes the SHA-256 hash of a workout's JSON encoding.
func HashWorkout(w models.Workout) (string, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
