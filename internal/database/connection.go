package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported drivers
const (
	DriverSQLite3  = "sqlite3"  // mattn/go-sqlite3, needs cgo
	DriverSQLite   = "sqlite"   // modernc.org/sqlite, pure Go
	DriverPostgres = "postgres" // lib/pq
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("database: not found")

// Config selects the database driver and data source
type Config struct {
	Driver string
	DSN    string
}

// Connect opens the database and creates the schema
func Connect(cfg Config) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite3, DriverSQLite:
		if err := ensureDataDir(cfg.DSN); err != nil {
			return nil, err
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if isSQLite(db) {
		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureDataDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func isSQLite(db *sqlx.DB) bool {
	return db.DriverName() == DriverSQLite3 || db.DriverName() == DriverSQLite
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	// Автоинкремент отличается в SQLite и PostgreSQL
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == DriverPostgres {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	tables := []struct {
		name string
		ddl  string
	}{
		{"words", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS words (
				id %s,
				word TEXT NOT NULL,
				translation TEXT NOT NULL,
				phonetic TEXT NOT NULL DEFAULT '',
				grade TEXT NOT NULL DEFAULT '',
				textbook TEXT NOT NULL DEFAULT '',
				unit INTEGER NOT NULL DEFAULT 0,
				list_id INTEGER NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				UNIQUE(word, textbook, unit)
			)
		`, idColumn)},
		{"learners", `
			CREATE TABLE IF NOT EXISTS learners (
				learner_id BIGINT PRIMARY KEY,
				chat_id BIGINT NOT NULL DEFAULT 0,
				plan_start TEXT NOT NULL,
				words_per_day INTEGER NOT NULL DEFAULT 10,
				reviews_per_day INTEGER NOT NULL DEFAULT 0,
				notification_hour INTEGER NOT NULL DEFAULT 9,
				is_active BOOLEAN NOT NULL DEFAULT TRUE
			)
		`},
		{"learning_records", `
			CREATE TABLE IF NOT EXISTS learning_records (
				learner_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL,
				strength DOUBLE PRECISION NOT NULL DEFAULT 0,
				repetition_count INTEGER NOT NULL DEFAULT 0,
				lapses INTEGER NOT NULL DEFAULT 0,
				attempts INTEGER NOT NULL DEFAULT 0,
				last_reviewed_at TEXT NOT NULL DEFAULT '',
				next_due_at TEXT,
				PRIMARY KEY (learner_id, word_id),
				FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE
			)
		`},
		{"study_results", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS study_results (
				id %s,
				learner_id BIGINT NOT NULL,
				session_id TEXT NOT NULL,
				mode TEXT NOT NULL,
				total_words INTEGER NOT NULL DEFAULT 0,
				correct_words INTEGER NOT NULL DEFAULT 0,
				wrong_words INTEGER NOT NULL DEFAULT 0,
				duration_ms BIGINT NOT NULL DEFAULT 0,
				finished_at TEXT NOT NULL
			)
		`, idColumn)},
	}

	for _, t := range tables {
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_words_list ON words(list_id, position)`); err != nil {
		return fmt.Errorf("failed to create words index: %w", err)
	}
	return nil
}
