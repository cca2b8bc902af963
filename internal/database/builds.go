package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BuildInfo is one recorded site build.
type BuildInfo struct {
	ID      int64     `json:"id"`
	Version string    `json:"version"`
	Pages   int       `json:"pages"`
	BuiltAt time.Time `json:"built_at"`
}

// RecordBuild stores the outcome of a completed site build.
func (s *Store) RecordBuild(version string, pages int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO content_builds (version, pages, built_at)
		VALUES (?, ?, ?)
	`
	if _, err := s.conn.Exec(query, version, pages, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record build: %w", err)
	}
	return nil
}

// LatestBuild returns the most recent build, or nil when none has been
// recorded yet.
func (s *Store) LatestBuild() (*BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, version, pages, built_at
		FROM content_builds
		ORDER BY id DESC
		LIMIT 1
	`

	var b BuildInfo
	err := s.conn.QueryRow(query).Scan(&b.ID, &b.Version, &b.Pages, &b.BuiltAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest build: %w", err)
	}
	return &b, nil
}
