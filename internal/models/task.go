package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskPriority is the user-assigned coarse priority of a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// Task is a read-only input to the scheduling core. It is mutated only by
// the task CRUD handlers.
type Task struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID         string             `bson:"owner_id" json:"ownerId"`
	Title           string             `bson:"title" json:"title" binding:"required"`
	Subject         string             `bson:"subject" json:"subject" binding:"required"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	DueDate         time.Time          `bson:"due_date" json:"dueDate" binding:"required"`
	Priority        TaskPriority       `bson:"priority" json:"priority" binding:"omitempty,oneof=High Medium Low"`
	DurationMinutes int                `bson:"duration_minutes,omitempty" json:"durationMinutes,omitempty"`
	Completed       bool               `bson:"completed" json:"completed"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
