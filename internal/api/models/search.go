package models

import "github.com/robworks/opsdocs/internal/database"

// SearchResponse is the result set for one full-text query.
type SearchResponse struct {
	Query   string                  `json:"query"`
	Count   int                     `json:"count"`
	Results []database.SearchResult `json:"results"`
}
