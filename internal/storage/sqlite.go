package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists blobs in a single-file embedded database, one row per
// namespaced key. Writes are serialized in-process; a second process sharing
// the data file still races whole blobs, last writer wins.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
	mu        sync.Mutex
	watchers  watchers
}

// OpenSQLite opens (creating the parent directory if needed) the blob store
// at path. The schema must already exist; run the migrate command first.
func OpenSQLite(path, namespace string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob store: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to blob store: %w", err)
	}

	var one int
	if err := db.QueryRow(`SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'blobs'`).Scan(&one); err != nil {
		_ = db.Close()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("blob store schema missing, run the migrate command")
		}
		return nil, fmt.Errorf("failed to inspect blob store schema: %w", err)
	}

	return &SQLiteStore{db: db, namespace: namespace}, nil
}

func (s *SQLiteStore) qualify(key string) string {
	return s.namespace + ":" + key
}

func (s *SQLiteStore) Read(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, s.qualify(key)).Scan(&value)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (s *SQLiteStore) Write(key string, value []byte) error {
	s.mu.Lock()
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.qualify(key), value)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.watchers.notify(key)
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	s.mu.Lock()
	_, err := s.db.Exec(`DELETE FROM blobs WHERE key = ?`, s.qualify(key))
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.watchers.notify(key)
	return nil
}

func (s *SQLiteStore) Watch() <-chan Event {
	return s.watchers.subscribe()
}

func (s *SQLiteStore) Close() error {
	s.watchers.closeAll()
	return s.db.Close()
}
