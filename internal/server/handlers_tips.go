package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/studyplan/internal/tips"
)

// GetTips returns personalized study tips based on the caller's data.
func (s *Server) GetTips(c *gin.Context) {
	ctx := c.Request.Context()
	owner := ownerID(c)

	tasks, err := s.ds.Tasks().ListPendingByOwner(ctx, owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load tasks"})
		return
	}
	classes, err := s.ds.Classes().ListByOwner(ctx, owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load classes"})
		return
	}
	exams, err := s.ds.Exams().ListByOwner(ctx, owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load exams"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	result := s.tips.Generate(ctx, tips.Input{
		Tasks:   tasks,
		Classes: classes,
		Exams:   exams,
		Limit:   limit,
	})
	c.JSON(http.StatusOK, gin.H{"source": result.Source, "tips": result.Tips})
}
