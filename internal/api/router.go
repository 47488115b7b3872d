package api

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"linkwriter/internal/config"
)

func SetupRouter(cfg *config.Config, deps *Deps) *gin.Engine {
	r := gin.Default()

	// Front-end entry page and static assets
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.StaticDir, "index.html"))
	})
	r.Static("/static", cfg.StaticDir)

	r.GET("/health", healthHandler)
	r.GET("/config", configHandler(cfg))
	r.GET("/models", ModelsHandler(deps.LLM))
	r.POST("/generate", GenerateHandler(deps))

	return r
}
