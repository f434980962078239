package schedule

import (
	"time"

	"github.com/abhisek/studyplan/internal/models"
)

// Context is everything a generation request needs, gathered up front so
// both generator paths work from the same snapshot.
type Context struct {
	OwnerID    string
	Tasks      []models.Task
	Classes    []models.Class
	Exams      []models.Exam
	Preference *models.Preference
	// Days is the planning horizon in days, starting at Now.
	Days int
	// Now anchors all date arithmetic. Tests pin it; production passes
	// time.Now().
	Now time.Time
}

// Result is the output of a generation attempt before persistence.
type Result struct {
	// Source names the generator that produced the slots: a provider name
	// for the primary path, or models.SourceRuleBased.
	Source string
	Slots  []models.StudySlot
}

// AvailabilityBlock is a free interval within a day's eligible window.
// Ephemeral; never persisted.
type AvailabilityBlock struct {
	Start time.Time
	End   time.Time
}

// Duration returns the block's length.
func (b AvailabilityBlock) Duration() time.Duration {
	return b.End.Sub(b.Start)
}
