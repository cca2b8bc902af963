package models

// RebuildResponse reports the outcome of an on-demand site rebuild.
type RebuildResponse struct {
	Status     string `json:"status"`
	Pages      int    `json:"pages"`
	PageErrors int    `json:"page_errors"`
	Version    string `json:"version"`
	DurationMs int64  `json:"duration_ms"`
}
