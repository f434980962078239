package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlotOrigin distinguishes generator-produced slots from user-created ones.
type SlotOrigin string

const (
	OriginAIGenerated SlotOrigin = "ai-generated"
	OriginManual      SlotOrigin = "manual"
)

// SourceRuleBased tags slots produced by the deterministic fallback planner.
// Slots from the primary path carry the provider name ("gemini", "openai", ...).
const SourceRuleBased = "rule-based"

// StudySlot is a proposed or confirmed study session.
//
// Lifecycle: the generator creates slots in bulk (origin ai-generated,
// unconfirmed); a regeneration replaces all unconfirmed slots; the user
// confirms a slot, may later complete it, and may delete it at any point.
type StudySlot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   string             `bson:"owner_id" json:"ownerId"`
	TaskID    string             `bson:"task_id,omitempty" json:"taskId,omitempty"`
	Title     string             `bson:"title" json:"title"`
	StartTime time.Time          `bson:"start_time" json:"startTime"`
	EndTime   time.Time          `bson:"end_time" json:"endTime"`
	// DurationMinutes always equals EndTime minus StartTime in minutes.
	DurationMinutes int        `bson:"duration_minutes" json:"durationMinutes"`
	Origin          SlotOrigin `bson:"origin" json:"origin"`
	Confirmed       bool       `bson:"confirmed" json:"confirmed"`
	Completed       bool       `bson:"completed" json:"completed"`
	Priority        int        `bson:"priority" json:"priority"` // 1-5, 5 highest
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Source          string     `bson:"source" json:"source"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Subject extracts the subject from a generated slot title, e.g.
// "Study Physics: Review Today's Material" -> "Physics". Returns "" when
// the title does not follow a generated pattern.
func (s *StudySlot) Subject() string {
	title := s.Title
	const study = "Study "
	const prepare = "Prepare for "
	switch {
	case len(title) > len(study) && title[:len(study)] == study:
		rest := title[len(study):]
		for i := 0; i < len(rest); i++ {
			if rest[i] == ':' {
				return rest[:i]
			}
		}
		return rest
	case len(title) > len(prepare) && title[:len(prepare)] == prepare:
		rest := title[len(prepare):]
		const examSuffix = " Exam"
		if len(rest) > len(examSuffix) && rest[len(rest)-len(examSuffix):] == examSuffix {
			return rest[:len(rest)-len(examSuffix)]
		}
		return rest
	}
	return ""
}
