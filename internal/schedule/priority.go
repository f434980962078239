package schedule

import (
	"math"
	"time"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/tips"
)

// ScoreInput is the derived metadata the scorer works from. Pure value;
// callers compute it from a task or exam.
type ScoreInput struct {
	DaysUntilDue int
	ExamLike     bool
	// Complexity is a 1-5 estimate; 0 means unknown.
	Complexity int
}

// Score assigns a 1-5 priority. Base 3, boosted by due-date proximity and
// item weight, clamped to the valid range.
func Score(in ScoreInput) int {
	p := 3
	switch {
	case in.DaysUntilDue <= 1:
		p += 2
	case in.DaysUntilDue <= 3:
		p++
	}
	if in.DaysUntilDue >= 7 {
		p--
	}
	if in.ExamLike {
		p++
	}
	if in.Complexity >= 4 {
		p++
	}
	if p < 1 {
		p = 1
	}
	if p > 5 {
		p = 5
	}
	return p
}

// DaysUntil returns the whole days from now until due, never negative,
// rounded up so "due later today" counts as due within 1 day.
func DaysUntil(now, due time.Time) int {
	d := due.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// ScoreTask scores a task from its due date, user-assigned priority, and
// the keyword analysis of its text. A High user priority counts as high
// complexity even when the analyzer disagrees.
func ScoreTask(task models.Task, now time.Time) int {
	analysis := tips.AnalyzeTask(task.Title + " " + task.Description)
	complexity := analysis.Complexity
	if task.Priority == models.PriorityHigh && complexity < 4 {
		complexity = 4
	}
	return Score(ScoreInput{
		DaysUntilDue: DaysUntil(now, task.DueDate),
		ExamLike:     analysis.ExamLike(),
		Complexity:   complexity,
	})
}
