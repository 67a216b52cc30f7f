package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Record is a persisted pad clip.
type Record struct {
	ID   int
	Name string
	MIME string
	Data []byte
}

// Store wraps the SQLite database holding pad clips, keyed by pad id.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open opens or creates the clip database in the given directory.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "soundpad.db")

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode so a write never blocks startup reads for long
	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pads (
			id   INTEGER PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			mime TEXT NOT NULL DEFAULT '',
			data BLOB
		);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create pads table: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Put writes or replaces the clip stored for a pad id.
func (s *Store) Put(id int, name, mime string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO pads (id, name, mime, data) VALUES (?, ?, ?, ?)
	`, id, name, mime, data)
	if err != nil {
		return fmt.Errorf("put pad %d: %w", id, err)
	}
	return nil
}

// GetAll returns every persisted pad record in id order.
func (s *Store) GetAll() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, name, mime, data FROM pads ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query pads: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.MIME, &r.Data); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete removes the clip stored for a pad id. Deleting a missing id is not
// an error.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM pads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pad %d: %w", id, err)
	}
	return nil
}
