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

// pathID parses the named path parameter as an object id, writing a 400
// response on failure.
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func (s *Server) ListTasks(c *gin.Context) {
	tasks, err := s.ds.Tasks().ListByOwner(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) CreateTask(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	task.ID = primitive.NilObjectID
	task.OwnerID = ownerID(c)
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.ds.Tasks().Insert(c.Request.Context(), &task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (s *Server) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	task.ID = id
	task.OwnerID = ownerID(c)
	task.UpdatedAt = time.Now()

	err := s.ds.Tasks().UpdateByID(c.Request.Context(), ownerID(c), id, &task)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (s *Server) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := s.ds.Tasks().DeleteByID(c.Request.Context(), ownerID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
