// Package middleware_test provides behavior tests for the API middleware package.
package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/robworks/opsdocs/internal/api/middleware"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/v1/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func performGet(router http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ============================================================================
// RequireAPIKey Middleware Tests
// ============================================================================

func TestRequireAPIKey_ValidKey(t *testing.T) {
	router := okRouter(middleware.RequireAPIKey("test-secret"))

	w := performGet(router, "/test", map[string]string{"X-Api-Key": "test-secret"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAPIKey_InvalidKey(t *testing.T) {
	router := okRouter(middleware.RequireAPIKey("correct-key"))

	w := performGet(router, "/test", map[string]string{"X-Api-Key": "wrong-key"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestRequireAPIKey_MissingKey(t *testing.T) {
	router := okRouter(middleware.RequireAPIKey("expected-key"))

	w := performGet(router, "/test", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAPIKey_EmptyExpected(t *testing.T) {
	// When no API key is configured, all requests should pass.
	router := okRouter(middleware.RequireAPIKey(""))

	w := performGet(router, "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performGet(router, "/test", map[string]string{"X-Api-Key": "some-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// SlogRequestLogger Middleware Tests
// ============================================================================

func TestSlogRequestLogger_NilLogger(t *testing.T) {
	// Should not panic with nil logger.
	router := okRouter(middleware.SlogRequestLogger(nil))

	w := performGet(router, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestSlogRequestLogger_APIPathsLogInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	router := okRouter(middleware.SlogRequestLogger(logger))

	performGet(router, "/api/v1/test", nil)

	out := buf.String()
	assert.Contains(t, out, "http request")
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, "/api/v1/test")
}

func TestSlogRequestLogger_PageTrafficLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	router := okRouter(middleware.SlogRequestLogger(logger))

	performGet(router, "/test", nil)

	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestSlogRequestLogger_ErrorStatus(t *testing.T) {
	router := gin.New()
	router.Use(middleware.SlogRequestLogger(nil))
	router.GET("/error", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something failed"})
	})

	w := performGet(router, "/error", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ============================================================================
// RateLimit Middleware Tests
// ============================================================================

func TestRateLimit_NilAllowPasses(t *testing.T) {
	router := okRouter(middleware.RateLimit(nil))

	w := performGet(router, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_DeniedRequestGets429(t *testing.T) {
	router := okRouter(middleware.RateLimit(func(string) bool { return false }))

	w := performGet(router, "/test", nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimit_AllowConsultedPerRequest(t *testing.T) {
	calls := 0
	router := okRouter(middleware.RateLimit(func(string) bool {
		calls++
		return calls > 1
	}))

	w := performGet(router, "/test", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = performGet(router, "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, calls)
}

// ============================================================================
// Integration Tests
// ============================================================================

func TestMiddlewareChain(t *testing.T) {
	router := gin.New()
	router.Use(middleware.SlogRequestLogger(nil))
	router.Use(middleware.RequireAPIKey("secret"))
	router.Use(middleware.RateLimit(func(string) bool { return true }))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "protected"})
	})

	// With valid key
	w := performGet(router, "/protected", map[string]string{"X-Api-Key": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Without key - should be rejected
	w = performGet(router, "/protected", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
