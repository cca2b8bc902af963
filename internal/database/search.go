package database

import (
	"fmt"
	"strings"
)

// SearchEntry is one page as fed into the FTS index.
type SearchEntry struct {
	Route   string `json:"route"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Body    string `json:"body"`
}

// SearchResult is one FTS hit, best match first.
type SearchResult struct {
	Route   string  `json:"route"`
	Title   string  `json:"title"`
	Section string  `json:"section,omitempty"`
	Snippet string  `json:"snippet"`
	Rank    float64 `json:"rank"`
}

// ReplaceSearchIndex swaps the whole search index in one transaction, so
// concurrent searches never observe a half-built index.
func (s *Store) ReplaceSearchIndex(entries []SearchEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM search_pages"); err != nil {
		return fmt.Errorf("failed to clear search index: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO search_pages (route, title, section, body)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare search insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Route, e.Title, e.Section, e.Body); err != nil {
			return fmt.Errorf("failed to index %s: %w", e.Route, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit search index: %w", err)
	}
	return nil
}

// Search runs a full-text query and returns up to limit hits ordered by
// bm25 relevance, each with a highlighted snippet.
func (s *Store) Search(q string, limit int) ([]SearchResult, error) {
	match := buildMatchQuery(q)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT route, title, section,
		       snippet(search_pages, 3, '<mark>', '</mark>', '…', 12),
		       bm25(search_pages)
		FROM search_pages
		WHERE search_pages MATCH ?
		ORDER BY bm25(search_pages)
		LIMIT ?
	`

	rows, err := s.conn.Query(query, match, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Route, &r.Title, &r.Section, &r.Snippet, &r.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

// buildMatchQuery quotes each term so user input cannot inject FTS5
// operators; terms combine with the implicit AND.
func buildMatchQuery(q string) string {
	fields := strings.Fields(q)
	if len(fields) == 0 {
		return ""
	}
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, `""`)
		terms = append(terms, `"`+f+`"`)
	}
	return strings.Join(terms, " ")
}
