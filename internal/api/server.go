// Package api provides the HTTP surface of opsdocs: the REST management
// API under /api/v1, the swagger UI, and the built handbook itself served
// from the output directory, all via a Gin-based HTTP server.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/robworks/opsdocs/internal/api/handlers"
	"github.com/robworks/opsdocs/internal/api/middleware"
	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/database"
)

// Server is the combined site and management API server.
//
// Security note: do not expose the write endpoints to untrusted networks
// without an API key.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	handlers   *handlers.Handler
	httpServer *http.Server
}

func New(cfg *config.Config, db *database.Store, logger *slog.Logger) *Server {
	if cfg == nil {
		panic("api.New: cfg is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.SlogRequestLogger(logger))

	h := handlers.New(cfg, db, logger)
	RegisterRoutes(engine, h, cfg)
	MountSite(engine, cfg.Site.OutputDir)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Rebuilds answer on the same connection, so the write budget is
		// wider than the read one.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, handlers: h, httpServer: httpServer}
}

func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handlers returns the handler set so the runner can wire runtime
// dependencies after construction.
func (s *Server) Handlers() *handlers.Handler {
	return s.handlers
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
