// Package database provides the SQLite-backed learner-progress and search
// store.
//
// The store holds:
//   - Quiz attempts (selections, correctness, score)
//   - Exercise events (started, hint_used, completed)
//   - Page visit counters
//   - Build history (content version per build)
//   - The FTS5 search index, refreshed on every build
//
// Schema changes ship as embedded golang-migrate migrations and are
// applied on Open, so a database created by an older binary upgrades in
// place.
package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store wraps a SQLite database connection with thread-safe operations.
type Store struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// Open opens or creates a SQLite database at the given path and brings
// its schema up to date.
func Open(path string) (*Store, error) {
	// Use WAL mode for better concurrency
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set reasonable connection pool limits
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	s := &Store{conn: conn}

	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Health checks database connectivity.
func (s *Store) Health() error {
	return s.conn.Ping()
}
