package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/robworks/opsdocs/internal/api/handlers"
	"github.com/robworks/opsdocs/internal/api/middleware"
	"github.com/robworks/opsdocs/internal/config"

	_ "github.com/robworks/opsdocs/internal/api/docs" // swagger docs
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// With the API disabled the server is a plain site host; nothing is
	// registered under /api/v1, including the mirror feed.
	if cfg != nil && !cfg.API.Enabled {
		return
	}

	api := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.Key != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.Key))
	}

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

	// Write endpoints carry a per-IP budget on top of the API key.
	writes := api.Group("")
	writes.Use(middleware.RateLimit(h.AllowWrite))
	writes.POST("/attempts/quiz", h.SubmitQuizAttempt)
	writes.POST("/attempts/exercise", h.RecordExerciseEvent)
	writes.POST("/rebuild", h.TriggerRebuild)
}
