package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/store"
)

func (s *Server) ListClasses(c *gin.Context) {
	classes, err := s.ds.Classes().ListByOwner(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list classes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (s *Server) CreateClass(c *gin.Context) {
	var class models.Class
	if err := c.ShouldBindJSON(&class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	class.ID = primitive.NilObjectID
	class.OwnerID = ownerID(c)
	now := time.Now()
	class.CreatedAt = now
	class.UpdatedAt = now

	if err := s.ds.Classes().Insert(c.Request.Context(), &class); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create class"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"class": class})
}

func (s *Server) UpdateClass(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var class models.Class
	if err := c.ShouldBindJSON(&class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	class.ID = id
	class.OwnerID = ownerID(c)
	class.UpdatedAt = time.Now()

	err := s.ds.Classes().UpdateByID(c.Request.Context(), ownerID(c), id, &class)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "class not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update class"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": class})
}

func (s *Server) DeleteClass(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := s.ds.Classes().DeleteByID(c.Request.Context(), ownerID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "class not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete class"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "class deleted"})
}

func (s *Server) ListExams(c *gin.Context) {
	exams, err := s.ds.Exams().ListByOwner(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list exams"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exams": exams})
}

func (s *Server) CreateExam(c *gin.Context) {
	var exam models.Exam
	if err := c.ShouldBindJSON(&exam); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	exam.ID = primitive.NilObjectID
	exam.OwnerID = ownerID(c)
	now := time.Now()
	exam.CreatedAt = now
	exam.UpdatedAt = now

	if err := s.ds.Exams().Insert(c.Request.Context(), &exam); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create exam"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"exam": exam})
}

func (s *Server) UpdateExam(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var exam models.Exam
	if err := c.ShouldBindJSON(&exam); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	exam.ID = id
	exam.OwnerID = ownerID(c)
	exam.UpdatedAt = time.Now()

	err := s.ds.Exams().UpdateByID(c.Request.Context(), ownerID(c), id, &exam)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "exam not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update exam"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exam": exam})
}

func (s *Server) DeleteExam(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := s.ds.Exams().DeleteByID(c.Request.Context(), ownerID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "exam not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete exam"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exam deleted"})
}

func (s *Server) GetPreferences(c *gin.Context) {
	pref, err := s.ds.Preferences().GetByOwner(c.Request.Context(), ownerID(c))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"preferences": models.DefaultPreference(ownerID(c))})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": pref})
}

func (s *Server) PutPreferences(c *gin.Context) {
	var pref models.Preference
	if err := c.ShouldBindJSON(&pref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	pref.OwnerID = ownerID(c)
	pref.UpdatedAt = time.Now()

	if err := s.ds.Preferences().Upsert(c.Request.Context(), &pref); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": pref})
}
