package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/schedule"
	"github.com/abhisek/studyplan/internal/store"
)

type generateRequest struct {
	Days int `json:"days" binding:"omitempty,min=1,max=28"`
}

// GenerateSchedule runs a generation request and returns the stored slots.
// An empty or missing body uses the default horizon.
func (s *Server) GenerateSchedule(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	result, err := s.schedule.GenerateSchedule(c.Request.Context(), ownerID(c), req.Days)
	if errors.Is(err, schedule.ErrNoClasses) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "add your classes first, then generate a schedule"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate schedule"})
		return
	}

	if s.recorder != nil {
		s.recorder.RecordGenerated(c.Request.Context(), ownerID(c), result.Slots)
	}
	c.JSON(http.StatusOK, gin.H{"source": result.Source, "slots": result.Slots})
}

// ListSuggestions returns the caller's unconfirmed generated slots.
func (s *Server) ListSuggestions(c *gin.Context) {
	slots, err := s.schedule.Suggestions(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list suggestions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListConfirmed returns the caller's confirmed slots.
func (s *Server) ListConfirmed(c *gin.Context) {
	slots, err := s.schedule.Confirmed(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list confirmed slots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type customSlotRequest struct {
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Priority  int       `json:"priority" binding:"omitempty,min=1,max=5"`
	Notes     string    `json:"notes"`
}

// CreateCustomSlot stores a user-created slot, already confirmed.
func (s *Server) CreateCustomSlot(c *gin.Context) {
	var req customSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	slot := &models.StudySlot{
		OwnerID:   ownerID(c),
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Priority:  req.Priority,
		Notes:     req.Notes,
	}
	if err := s.schedule.CreateManual(c.Request.Context(), slot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

// ConfirmSlot moves a suggested slot into the confirmed state.
func (s *Server) ConfirmSlot(c *gin.Context) {
	id, ok := pathID(c, "slotId")
	if !ok {
		return
	}
	slot, err := s.schedule.Confirm(c.Request.Context(), ownerID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "slot not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to confirm slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

// CompleteSlot marks a slot as completed.
func (s *Server) CompleteSlot(c *gin.Context) {
	id, ok := pathID(c, "slotId")
	if !ok {
		return
	}
	slot, err := s.schedule.Complete(c.Request.Context(), ownerID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "slot not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to complete slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

// DeleteSlot removes a slot in any state.
func (s *Server) DeleteSlot(c *gin.Context) {
	id, ok := pathID(c, "slotId")
	if !ok {
		return
	}
	err := s.schedule.Delete(c.Request.Context(), ownerID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "slot not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot deleted"})
}
