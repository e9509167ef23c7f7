// Package server exposes the REST API over the trend and post services.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server binds API routes to the use-case services.
type Server struct {
	trends TrendService
	posts  PostService
	region string
	logger *slog.Logger
}

// New constructs the API server.
func New(trends TrendService, posts PostService, region string, logger *slog.Logger) *Server {
	return &Server{trends: trends, posts: posts, region: region, logger: logger}
}

// Router assembles the gin engine with all API routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		api.GET("/trends", s.listTrends)
		api.POST("/trends/fetch", s.fetchTrends)
		api.PATCH("/trends/:id", s.updateTrend)
		api.DELETE("/trends/:id", s.deleteTrend)

		api.GET("/posts", s.listPosts)
		api.POST("/posts/generate", s.generatePosts)
		api.POST("/posts/:id/publish", s.publishPost)
		api.POST("/posts/:id/schedule", s.schedulePost)
		api.GET("/posts/:id/analytics", s.postAnalytics)

		api.GET("/credentials/:platform/validate", s.validateCredentials)
		api.GET("/stats", s.stats)
	}

	return engine
}

// Run serves the API on the given port until the listener fails.
func (s *Server) Run(port string) error {
	return s.Router().Run(":" + port)
}
