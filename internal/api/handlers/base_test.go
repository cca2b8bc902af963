package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/robworks/opsdocs/internal/api/handlers"
	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/database"
	"github.com/robworks/opsdocs/internal/site"
)

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)
	api.GET("/pages", h.ListPages)
	api.GET("/pages/*route", h.GetPage)
	api.GET("/search", h.Search)
	api.GET("/lint", h.LintContent)
	api.GET("/progress", h.GetProgress)
	api.GET("/content/version", h.GetContentVersion)
	api.GET("/content/export", h.GetContentExport)
	api.POST("/attempts/quiz", h.SubmitQuizAttempt)
	api.POST("/attempts/exercise", h.RecordExerciseEvent)
	api.POST("/rebuild", h.TriggerRebuild)

	return r
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const homeDoc = `---
title: Ops Handbook
description: Runbooks and references for the ops team.
---

# Ops Handbook

Start with the Linux basics, then move on to DNS.
`

const grepDoc = `---
title: Grep Basics
description: Find text in files fast.
tags: [linux, search]
---

# Grep Basics

Search files with grep.

## Useful flags

` + "```quiz\nquestion: Which flag makes grep case-insensitive?\noptions:\n  - text: \"-i\"\n    correct: true\n    feedback: Right, -i ignores case.\n  - text: \"-v\"\n  - text: \"-n\"\n```\n"

const permissionsDoc = `---
title: File Permissions
description: chmod, chown and the mode bits.
tags: [linux]
---

# File Permissions

The mode bits control who may read, write and execute a file.

` + "```exercise\ntitle: Lock down a private key\ndifficulty: beginner\nscenario: Make ~/.ssh/id_ed25519 readable and writable only by its owner.\nhints:\n  - Numeric modes are easiest here.\nsolution: chmod 600 ~/.ssh/id_ed25519\n```\n"

const recordsDoc = `---
title: DNS Record Types
description: The records every resolver operator meets.
tags: [dns]
---

# DNS Record Types

A records map names to IPv4 addresses and AAAA records map names to
IPv6 addresses.
`

// writeDoc drops a Markdown source under the content directory.
func writeDoc(t *testing.T, cfg *config.Config, rel, body string) {
	t.Helper()
	path := filepath.Join(cfg.Site.ContentDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Site.Name = "Ops Test"
	cfg.Site.ContentDir = filepath.Join(dir, "docs")
	cfg.Site.OutputDir = filepath.Join(dir, "public")
	cfg.Store.Path = filepath.Join(dir, "opsdocs.db")
	return cfg
}

// buildTestSite writes the fixture corpus, builds it and returns a
// handler wired the way the runner wires one: live model, a real store
// and a populated search index.
func buildTestSite(t *testing.T) (*handlers.Handler, *site.Model) {
	t.Helper()
	cfg := testConfig(t)

	writeDoc(t, cfg, "index.md", homeDoc)
	writeDoc(t, cfg, "linux/grep.md", grepDoc)
	writeDoc(t, cfg, "linux/permissions.md", permissionsDoc)
	writeDoc(t, cfg, "dns/records.md", recordsDoc)

	builder := site.NewBuilder(cfg.Site, 2, testLogger())
	res, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	model := res.Model

	store, err := database.Open(cfg.Store.Path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	entries := make([]database.SearchEntry, 0, len(model.Pages))
	for _, pm := range model.Pages {
		entries = append(entries, database.SearchEntry{
			Route:   pm.Page.Route,
			Title:   pm.Page.Title(),
			Section: pm.Page.Section,
			Body:    pm.Fragment.Plain,
		})
	}
	require.NoError(t, store.ReplaceSearchIndex(entries))

	h := handlers.New(cfg, store, testLogger())
	h.SetModelFunc(func() *site.Model { return model })
	return h, model
}
