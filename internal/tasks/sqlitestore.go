package tasks

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	position INTEGER PRIMARY KEY,
	line     TEXT NOT NULL
);
`

// SQLiteStore keeps the same storage lines as FileStore, one row per task,
// ordered by position.
type SQLiteStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create task db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open task db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init task db: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Load reads every row in position order. Rows that fail to decode are
// reported with their 1-based position and skipped.
func (s *SQLiteStore) Load() ([]*Task, []CorruptLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT line FROM tasks ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, nil, fmt.Errorf("scan task row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate task rows: %w", err)
	}

	list, corrupt := LoadTasks(lines)
	return list, corrupt, nil
}

// Save replaces all rows with a snapshot of list in a single transaction.
func (s *SQLiteStore) Save(list []*Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (position, line) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, line := range SerializeTasks(list) {
		if _, err := stmt.Exec(i+1, line); err != nil {
			return fmt.Errorf("insert task %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Location returns the database path.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
