package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AnalyticsSummary returns the current week's stats and the lifetime rollup.
func (s *Server) AnalyticsSummary(c *gin.Context) {
	summary, err := s.analytics.WeeklySummary(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// AnalyticsHistory returns past rollups, newest first.
func (s *Server) AnalyticsHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	history, err := s.analytics.History(c.Request.Context(), ownerID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// AnalyticsInsights returns generated insights for the current week.
func (s *Server) AnalyticsInsights(c *gin.Context) {
	source, insights, err := s.analytics.Insights(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate insights"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": source, "insights": insights})
}
