package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkwriter/internal/config"
	"linkwriter/internal/llm"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"ollama_url":          cfg.OllamaURL,
			"enable_image_search": cfg.EnableImageSearch,
		})
	}
}

// GET /models
func ModelsHandler(client *llm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, client.ListModels(c.Request.Context()))
	}
}
