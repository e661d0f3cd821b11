package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/trackit/internal/model"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Store owns the durable copies of all entities. Every read returns an
// independent copy and every write replaces the stored record wholesale.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath, runs migrations and
// seeds the default workout types into an empty database.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.seedWorkoutTypes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed workout types: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	// Workouts and drafts are stored as JSON documents; the date column
	// mirrors the document's date field for ordering.
	const ddl = `
	CREATE TABLE IF NOT EXISTS workouts (
		id    TEXT PRIMARY KEY,
		date  TEXT NOT NULL,
		data  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date);

	CREATE TABLE IF NOT EXISTS workout_types (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS drafts (
		key       TEXT PRIMARY KEY,
		saved_at  TEXT NOT NULL,
		data      TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

var defaultTypeNames = []string{"Push", "Pull", "Beine", "Arme", "Ganzkörper"}

// seedWorkoutTypes inserts the built-in types when the collection is empty.
// Seeding happens once at startup, before any concurrent readers exist, so
// the empty-to-nonempty transition cannot race itself.
func (s *Store) seedWorkoutTypes() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM workout_types`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range defaultTypeNames {
		t := model.NewWorkoutType(name)
		if _, err := tx.Exec(`INSERT INTO workout_types (id, name) VALUES (?, ?)`, t.ID, t.Name); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DefaultDBPath returns ~/.config/trackit/trackit.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "trackit", "trackit.db"), nil
}
