package models

import (
	"encoding/json"

	"github.com/robworks/opsdocs/internal/render"
)

// PageSummary is one page in a listing.
type PageSummary struct {
	Route       string   `json:"route"`
	Title       string   `json:"title"`
	Section     string   `json:"section"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Widgets     int      `json:"widgets"`
}

// PageListResponse lists the pages of the built site.
type PageListResponse struct {
	Version string        `json:"version"`
	Count   int           `json:"count"`
	Pages   []PageSummary `json:"pages"`
}

// WidgetInfo describes one interactive widget on a page. Config carries the
// widget configuration as raw JSON; Error is set when the widget block failed
// to decode and Config is absent.
type WidgetInfo struct {
	Ref    string          `json:"ref"`
	Kind   string          `json:"kind"`
	Line   int             `json:"line"`
	Title  string          `json:"title,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// PageDetailResponse is the full structural view of one page.
type PageDetailResponse struct {
	Route       string           `json:"route"`
	Title       string           `json:"title"`
	Section     string           `json:"section"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	SourcePath  string           `json:"source_path"`
	TOC         []render.Heading `json:"toc"`
	Widgets     []WidgetInfo     `json:"widgets"`
}
