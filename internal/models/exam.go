package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exam is a one-time fixed commitment with a priority-boosting effect on
// nearby days.
type Exam struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   string             `bson:"owner_id" json:"ownerId"`
	Subject   string             `bson:"subject" json:"subject" binding:"required"`
	Date      time.Time          `bson:"date" json:"date" binding:"required"`
	StartTime string             `bson:"start_time" json:"startTime" binding:"required,clocktime"`
	EndTime   string             `bson:"end_time" json:"endTime" binding:"required,clocktime"`
	Duration  string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
