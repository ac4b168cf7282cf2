package app

import (
	"os/exec"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gamdel/core/internal/middleware"
	"github.com/gamdel/core/internal/modules/answer"
	"github.com/gamdel/core/internal/modules/ask"
	"github.com/gamdel/core/internal/modules/conversation"
	"github.com/gamdel/core/internal/modules/documents"
	"github.com/gamdel/core/internal/modules/extract"
	"github.com/gamdel/core/internal/modules/resolver"
	"github.com/gamdel/core/internal/pkg/redis"
	"github.com/gamdel/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *redis.Client) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.Use(middleware.RateLimit(rc.Raw()))

	extractor := extract.NewPDFExtractor()
	if _, err := exec.LookPath("pdftotext"); err != nil {
		a.logger.Warn("pdftotext not found, uploads will fail",
			zap.String("hint", extract.InstallInstructions()))
	}

	store := documents.NewStore()
	docsSvc := documents.NewService(a.db, store, extractor, a.cfg.DataDir, a.logger)
	convSvc := conversation.NewService(a.db)
	res := resolver.New(*a.cfg.Resolver.MinScore, a.logger)
	ansSvc := answer.NewService(a.cfg.AI, a.logger)
	askSvc := ask.NewService(docsSvc, convSvc, res, ansSvc, rc, a.cfg.Resolver.ContextLimit, a.logger)

	appInfo := gin.H{
		"name":    "gamdel-core",
		"version": "1.0.0",
	}

	root := r.Group("")
	root.GET("/api/v1", func(c *gin.Context) {
		c.JSON(200, appInfo)
	})
	root.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})
	root.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
	})

	documents.NewHandler(docsSvc).RegisterRoutes(root)
	conversation.NewHandler(convSvc).RegisterRoutes(root)
	ask.NewHandler(askSvc).RegisterRoutes(root)
}
