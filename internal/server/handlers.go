package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"TrendPoster/internal/domain"
)

func (s *Server) listTrends(c *gin.Context) {
	trends, err := s.trends.List(c.Request.Context(), c.Query("source"), c.Query("status"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to fetch trends", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trendViews(trends)})
}

type fetchTrendsRequest struct {
	Sources []string `json:"sources"`
	Region  string   `json:"region"`
}

func (s *Server) fetchTrends(c *gin.Context) {
	var req fetchTrendsRequest
	// Body is optional; an empty body means all sources, default region.
	_ = c.ShouldBindJSON(&req)
	if req.Region == "" {
		req.Region = s.region
	}

	trends, err := s.trends.Refresh(c.Request.Context(), req.Sources, req.Region)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(trends),
		"trends":  trendViews(trends),
	})
}

type updateTrendRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateTrend(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	var req updateTrendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := s.trends.UpdateStatus(c.Request.Context(), id, domain.TrendStatus(req.Status)); err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to update trend", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) deleteTrend(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	if err := s.trends.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to delete trend", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) listPosts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.fail(c, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = parsed
	}

	posts, err := s.posts.List(c.Request.Context(), c.Query("platform"), c.Query("status"), limit)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to fetch posts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": postViews(posts)})
}

type generateRequest struct {
	TrendID  int64  `json:"trendId" binding:"required"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
	Language string `json:"language"`
}

func (s *Server) generatePosts(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	posts, err := s.posts.Generate(c.Request.Context(), req.TrendID, req.Platform, domain.Tone(req.Tone), req.Language)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to generate post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": postViews(posts)})
}

func (s *Server) publishPost(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	result, post, err := s.posts.Publish(c.Request.Context(), id)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to publish post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": result.Success,
		"post":    postView(post),
		"error":   result.Error,
	})
}

type scheduleRequest struct {
	ScheduledFor time.Time `json:"scheduledFor" binding:"required"`
}

func (s *Server) schedulePost(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := s.posts.Schedule(c.Request.Context(), id, req.ScheduledFor); err != nil {
		s.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) postAnalytics(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	analytics, err := s.posts.RefreshAnalytics(c.Request.Context(), id)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to fetch analytics", err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func (s *Server) validateCredentials(c *gin.Context) {
	check := s.posts.ValidateCredentials(c.Param("platform"))
	c.JSON(http.StatusOK, check)
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.posts.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func (s *Server) fail(c *gin.Context, status int, message string, err error) {
	if s.logger != nil {
		s.logger.Error(message, "error", err, "path", c.FullPath())
	}
	c.JSON(status, gin.H{"error": message})
}
