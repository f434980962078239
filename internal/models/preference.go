package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Preference parameterizes both generator paths. Absent preferences fall
// back to the defaults returned by DefaultPreference.
type Preference struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID          string             `bson:"owner_id" json:"ownerId"`
	StudyPreferences StudyPreferences   `bson:"study_preferences" json:"studyPreferences"`
	DailyRoutine     DailyRoutine       `bson:"daily_routine" json:"dailyRoutine"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

type StudyPreferences struct {
	// PreferredTimes holds any of: morning, afternoon, evening, night.
	PreferredTimes []string `bson:"preferred_times" json:"preferredTimes" binding:"omitempty,dive,oneof=morning afternoon evening night"`
	// PreferredDurationMinutes is the target length of a study session.
	PreferredDurationMinutes int    `bson:"preferred_duration_minutes" json:"preferredDurationMinutes" binding:"omitempty,min=15,max=180"`
	LearningStyle            string `bson:"learning_style,omitempty" json:"learningStyle,omitempty"`
}

type DailyRoutine struct {
	PlayMinutes int `bson:"play_minutes" json:"playMinutes"`
	MealMinutes int `bson:"meal_minutes" json:"mealMinutes"`
}

// DefaultPreference returns the documented defaults: 60-minute sessions with
// an evening preference.
func DefaultPreference(ownerID string) *Preference {
	return &Preference{
		OwnerID: ownerID,
		StudyPreferences: StudyPreferences{
			PreferredTimes:           []string{"evening"},
			PreferredDurationMinutes: 60,
		},
		DailyRoutine: DailyRoutine{
			PlayMinutes: 60,
			MealMinutes: 60,
		},
	}
}
