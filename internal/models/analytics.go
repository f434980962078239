package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubjectStats is the per-subject slice of a user's analytics rollup.
type SubjectStats struct {
	TotalSlots     int `bson:"total_slots" json:"totalSlots"`
	ConfirmedSlots int `bson:"confirmed_slots" json:"confirmedSlots"`
	CompletedSlots int `bson:"completed_slots" json:"completedSlots"`
	DeletedSlots   int `bson:"deleted_slots" json:"deletedSlots"`
}

// Analytics is the rollup document maintained by the analytics recorder as
// slot lifecycle events arrive.
type Analytics struct {
	ID              primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	OwnerID         string                  `bson:"owner_id" json:"ownerId"`
	GeneratedAt     time.Time               `bson:"generated_at" json:"generatedAt"`
	TotalSlots      int                     `bson:"total_slots" json:"totalSlots"`
	ConfirmedSlots  int                     `bson:"confirmed_slots" json:"confirmedSlots"`
	CompletedSlots  int                     `bson:"completed_slots" json:"completedSlots"`
	DeletedSlots    int                     `bson:"deleted_slots" json:"deletedSlots"`
	TotalStudyHours float64                 `bson:"total_study_hours" json:"totalStudyHours"`
	Subjects        map[string]SubjectStats `bson:"subjects" json:"subjects"`
}

// EnsureSubject initializes the per-subject bucket if missing.
func (a *Analytics) EnsureSubject(subject string) {
	if subject == "" {
		return
	}
	if a.Subjects == nil {
		a.Subjects = make(map[string]SubjectStats)
	}
	if _, ok := a.Subjects[subject]; !ok {
		a.Subjects[subject] = SubjectStats{}
	}
}
