// Package sqlite implements the record store over an embedded SQLite
// database, using the cgo-free modernc driver.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"nutrilog/internal/domain"
)

const currentVersion = 1

// timeLayout is how timestamps are persisted; lexicographic order on the
// stored text matches chronological order because values are UTC.
const timeLayout = time.RFC3339

// Store wraps a single *sql.DB handle and implements every domain
// repository port. It is opened once and shared for the process lifetime.
type Store struct {
	db *sql.DB

	// now is overridable in tests so period windows are deterministic.
	now func() time.Time
}

// Compile-time port checks.
var (
	_ domain.MealRepository     = (*Store)(nil)
	_ domain.WaterRepository    = (*Store)(nil)
	_ domain.WeightRepository   = (*Store)(nil)
	_ domain.SettingsRepository = (*Store)(nil)
	_ domain.SnapshotRepository = (*Store)(nil)
)

// Open opens (or creates) the database at dbPath and runs migrations.
// Opening is idempotent: an already-migrated database is left untouched.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

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

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store, used by tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
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

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS meals (
		id              TEXT PRIMARY KEY,
		user_id         TEXT,
		title           TEXT NOT NULL DEFAULT '',
		description     TEXT,
		category        TEXT NOT NULL DEFAULT 'snack',
		portion_weight  INTEGER,
		calories        INTEGER NOT NULL DEFAULT 0,
		protein         REAL NOT NULL DEFAULT 0,
		fat             REAL NOT NULL DEFAULT 0,
		carbs           REAL NOT NULL DEFAULT 0,
		image_url       TEXT,
		meal_time       TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_meals_meal_time ON meals(meal_time);
	CREATE INDEX IF NOT EXISTS idx_meals_category  ON meals(category);

	CREATE TABLE IF NOT EXISTS water_records (
		id          TEXT PRIMARY KEY,
		user_id     TEXT,
		amount_ml   INTEGER NOT NULL DEFAULT 0,
		record_date TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_water_record_date ON water_records(record_date);

	CREATE TABLE IF NOT EXISTS weight_records (
		id          TEXT PRIMARY KEY,
		user_id     TEXT,
		weight_kg   REAL NOT NULL,
		record_date TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_weight_record_date ON weight_records(record_date);

	CREATE TABLE IF NOT EXISTS user_settings (
		id                    TEXT PRIMARY KEY,
		user_id               TEXT,
		daily_calorie_goal    INTEGER NOT NULL DEFAULT 2000,
		daily_water_goal_ml   INTEGER NOT NULL DEFAULT 2000,
		target_weight_kg      REAL,
		initial_weight_kg     REAL,
		notifications_enabled INTEGER NOT NULL DEFAULT 1,
		dark_mode             INTEGER NOT NULL DEFAULT 0,
		language              TEXT NOT NULL DEFAULT 'ru',
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullStr maps "" to NULL so optional text columns stay NULL when unset.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func strOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
