// Package api_test provides behavior tests for the API package.
package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robworks/opsdocs/internal/api"
	"github.com/robworks/opsdocs/internal/api/models"
	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/content"
	"github.com/robworks/opsdocs/internal/mirror"
	"github.com/robworks/opsdocs/internal/render"
	"github.com/robworks/opsdocs/internal/site"
)

func createTestConfig() *config.Config {
	return &config.Config{
		Site: config.SiteConfig{
			Name:       "Ops Test",
			ContentDir: "testdata/content",
			OutputDir:  "testdata/public",
		},
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		API: config.APIConfig{
			Enabled: true,
			Key:     "",
		},
		Search: config.SearchConfig{
			Enabled:    true,
			MaxResults: 20,
		},
	}
}

// testModel is a hand-built single-page model; route handlers only need
// the lookup structures, not a real build.
func testModel() *site.Model {
	page := &content.Page{
		SourcePath: "linux/grep.md",
		Route:      "/linux/grep/",
		Section:    "linux",
		Raw:        []byte("# Grep\n\nSearch files.\n"),
	}
	pm := &site.PageModel{Page: page, Fragment: &render.Fragment{}}
	return &site.Model{
		Pages:   []*site.PageModel{pm},
		ByRoute: map[string]*site.PageModel{"/linux/grep/": pm},
		Version: "abc123",
		BuiltAt: time.Now(),
	}
}

func performRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ============================================================================
// Server Creation Tests
// ============================================================================

func TestNew_CreatesServer(t *testing.T) {
	cfg := createTestConfig()

	server := api.New(cfg, nil, nil)

	assert.NotNil(t, server)
	assert.NotNil(t, server.Handlers())
}

func TestNew_PanicsOnNilConfig(t *testing.T) {
	assert.Panics(t, func() {
		api.New(nil, nil, nil)
	})
}

func TestServer_Addr(t *testing.T) {
	cfg := createTestConfig()
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 9090

	server := api.New(cfg, nil, nil)

	assert.Equal(t, "0.0.0.0:9090", server.Addr())
}

func TestServer_Engine(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	engine := server.Engine()

	assert.NotNil(t, engine)
}

// ============================================================================
// Routes Tests
// ============================================================================

func TestRoutes_HealthEndpoint(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.StatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestRoutes_StatsEndpoint(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ServerStatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Uptime)
	assert.Greater(t, resp.GoRoutines, 0)
}

func TestRoutes_ConfigEndpoint_RedactsSecrets(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.Key = "super-secret-api-key"
	cfg.Mirror.APIKey = "super-secret-mirror-key"
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	req.Header.Set("X-Api-Key", "super-secret-api-key")
	w := httptest.NewRecorder()
	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"site"`)
	assert.NotContains(t, w.Body.String(), "super-secret-api-key")
	assert.NotContains(t, w.Body.String(), "super-secret-mirror-key")
}

func TestRoutes_PagesEndpoint_NoModel(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	// Without a completed build, content endpoints return 503.
	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/pages", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = performRequest(server.Engine(), http.MethodGet, "/api/v1/lint", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutes_PagesEndpoint_WithModel(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)
	server.Handlers().SetModelFunc(testModel)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/pages", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.PageListResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "abc123", resp.Version)
	assert.Equal(t, "/linux/grep/", resp.Pages[0].Route)
}

func TestRoutes_ContentVersion_WithModel(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)
	server.Handlers().SetModelFunc(testModel)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/content/version", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp mirror.VersionData
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.Version)
	assert.Equal(t, 1, resp.Pages)
}

func TestRoutes_SearchWithoutStore(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/search?q=grep", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutes_RebuildUnwired(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodPost, "/api/v1/rebuild", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutes_APIDisabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.Enabled = false
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ============================================================================
// API Key Protection Tests
// ============================================================================

func TestRoutes_WithAPIKey_ValidKey(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.Key = "secret-key"
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Api-Key", "secret-key")
	w := httptest.NewRecorder()

	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_WithAPIKey_InvalidKey(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.Key = "secret-key"
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Api-Key", "wrong-key")
	w := httptest.NewRecorder()

	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_WithAPIKey_MissingKey(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.Key = "secret-key"
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	// No X-API-Key header
	w := httptest.NewRecorder()

	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_NoAPIKey_NoAuth(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.Key = "" // No API key configured
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()

	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// Static Site Tests
// ============================================================================

func TestRoutes_ServesBuiltSite(t *testing.T) {
	outDir := t.TempDir()
	pageDir := filepath.Join(outDir, "linux", "grep")
	require.NoError(t, os.MkdirAll(pageDir, 0o755))
	page := []byte("<!doctype html><title>Grep</title><h1>Grep Basics</h1>")
	require.NoError(t, os.WriteFile(filepath.Join(pageDir, "index.html"), page, 0o644))

	cfg := createTestConfig()
	cfg.Site.OutputDir = outDir
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/linux/grep/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Grep Basics")
}

func TestRoutes_MissingPageGets404Page(t *testing.T) {
	cfg := createTestConfig()
	cfg.Site.OutputDir = t.TempDir()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/no/such/page/", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

// ============================================================================
// Server Lifecycle Tests
// ============================================================================

func TestServer_Shutdown(t *testing.T) {
	cfg := createTestConfig()
	cfg.Server.Port = 0 // Let the OS pick a port
	server := api.New(cfg, nil, nil)

	// Shutdown should not error even if never started
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := server.Shutdown(ctx)
	assert.NoError(t, err)
}

// ============================================================================
// Swagger Endpoint Tests
// ============================================================================

func TestRoutes_SwaggerEndpoint(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/swagger/index.html", "")

	// Swagger UI should be accessible
	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// Not Found Tests
// ============================================================================

func TestRoutes_NotFound(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/nonexistent", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}
