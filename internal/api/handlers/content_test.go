package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robworks/opsdocs/internal/api/handlers"
	"github.com/robworks/opsdocs/internal/api/models"
	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/lint"
	"github.com/robworks/opsdocs/internal/mirror"
	"github.com/robworks/opsdocs/internal/site"
)

func TestGetContentVersion(t *testing.T) {
	h, model := buildTestSite(t)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/content/version", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp mirror.VersionData
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, model.Version, resp.Version)
	assert.Equal(t, 4, resp.Pages)
	assert.False(t, resp.BuiltAt.IsZero())
}

func TestGetContentVersion_NoModel(t *testing.T) {
	h := handlers.New(config.Default(), nil, testLogger())
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/content/version", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetContentExport(t *testing.T) {
	h, model := buildTestSite(t)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/content/export", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp mirror.ExportData
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, model.Version, resp.Version)
	assert.False(t, resp.GeneratedAt.IsZero())
	require.Len(t, resp.Files, 4)

	paths := make(map[string]string, len(resp.Files))
	for _, f := range resp.Files {
		paths[f.Path] = f.Raw
	}
	require.Contains(t, paths, "linux/grep.md")
	assert.Contains(t, paths["linux/grep.md"], "title: Grep Basics")
	assert.Contains(t, paths["linux/grep.md"], "```quiz")
}

func TestGetContentExport_SecondaryRefuses(t *testing.T) {
	cfg := config.Default()
	cfg.Mirror.Mode = config.MirrorSecondary
	cfg.Mirror.PrimaryURL = "http://127.0.0.1:9"
	h := handlers.New(cfg, nil, testLogger())
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/content/export", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not allowed from secondary")
}

func TestTriggerRebuild(t *testing.T) {
	h, model := buildTestSite(t)
	h.SetRebuildFunc(func(ctx context.Context) (*site.Result, error) {
		return &site.Result{Model: model, Duration: 150 * time.Millisecond}, nil
	})
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodPost, "/api/v1/rebuild", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.RebuildResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 4, resp.Pages)
	assert.Equal(t, model.Version, resp.Version)
	assert.Equal(t, int64(150), resp.DurationMs)
}

func TestTriggerRebuild_AlreadyRunning(t *testing.T) {
	h, _ := buildTestSite(t)
	h.SetRebuildFunc(func(ctx context.Context) (*site.Result, error) {
		return nil, site.ErrBuildInProgress
	})
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodPost, "/api/v1/rebuild", "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTriggerRebuild_Unwired(t *testing.T) {
	h := handlers.New(config.Default(), nil, testLogger())
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodPost, "/api/v1/rebuild", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLintContent_Clean(t *testing.T) {
	h, _ := buildTestSite(t)
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/lint", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp lint.Report
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Zero(t, resp.Errors)
	assert.Empty(t, resp.Findings)
}

func TestLintContent_ReportsBuildErrors(t *testing.T) {
	h, _ := buildTestSite(t)
	h.SetPageErrorsFunc(func() []site.PageError {
		return []site.PageError{{Path: "linux/broken.md", Err: assert.AnError}}
	})
	r := setupTestRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/lint", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp lint.Report
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Findings)
	first := resp.Findings[0]
	assert.Equal(t, "build", first.Rule)
	assert.Equal(t, lint.SeverityError, first.Severity)
	assert.Equal(t, "linux/broken.md", first.File)
	assert.GreaterOrEqual(t, resp.Errors, 1)
}
